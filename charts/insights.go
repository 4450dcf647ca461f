package charts

var titles = map[Kind]string{
	KindPie:       "Pie Chart - Sales Distribution by Category",
	KindTreemap:   "Treemap - Sales Hierarchy",
	KindHeatmap:   "Correlation Heatmap - Numerical Variables",
	KindLine:      "Line Chart - Average Purchase by Age Group",
	KindParallel:  "Parallel Coordinates Plot - Customer Segmentation",
	KindSunburst:  "Sunburst Chart - Seasonal Category Breakdown",
	KindBar:       "Bar Chart - Top Items by Purchase Count",
	KindSankey:    "Sankey Diagram - Category to Shipping to Payment",
	KindScatter3D: "3D Scatter Plot - Age, Spend and Loyalty",
}

var insights = map[Kind]Insight{
	KindPie: {
		Purpose:       "Shows the proportion of total sales contributed by each product category",
		Insight:       "Reveals which categories dominate the revenue stream",
		BusinessValue: "Guides resource allocation and category-specific strategies",
	},
	KindTreemap: {
		Purpose:       "Hierarchical view of sales by category and individual items",
		Insight:       "Larger rectangles indicate higher sales volume, allowing quick visual comparison",
		BusinessValue: "Identifies top-performing products within each category for strategic stocking",
	},
	KindHeatmap: {
		Purpose:       "Shows statistical correlations between all numerical variables in the dataset",
		Insight:       "Values close to 1 or -1 indicate strong positive or negative relationships",
		BusinessValue: "Helps understand which factors most strongly influence purchase behavior",
	},
	KindLine: {
		Purpose:       "Displays average spending patterns across different age groups",
		Insight:       "Shows which age demographic spends the most on average",
		BusinessValue: "Enables targeted marketing campaigns for high-value age segments",
	},
	KindParallel: {
		Purpose:       "Shows relationships between multiple numerical variables simultaneously",
		Insight:       "Each line represents an individual customer across different dimensions",
		BusinessValue: "Identifies patterns and segments of high-value customers for targeted engagement",
	},
	KindSunburst: {
		Purpose:       "Hierarchical breakdown of sales by season, category, and specific items",
		Insight:       "Inner rings represent seasons, outer rings show categories and individual products",
		BusinessValue: "Enables seasonal inventory planning and promotional campaign scheduling",
	},
	KindBar: {
		Purpose:       "Ranks the most frequently purchased items for the current filters",
		Insight:       "Taller bars mark the items customers buy most often",
		BusinessValue: "Focuses replenishment and merchandising on high-demand products",
	},
	KindSankey: {
		Purpose:       "Traces how spending flows from category through shipping choice to payment method",
		Insight:       "Wider bands carry more revenue along that path",
		BusinessValue: "Highlights checkout combinations worth optimizing or promoting",
	},
	KindScatter3D: {
		Purpose:       "Plots each customer by age, purchase amount and previous purchases",
		Insight:       "Color encodes review rating, exposing clusters of satisfied repeat buyers",
		BusinessValue: "Supports loyalty targeting by combining demographics with purchase history",
	},
}
