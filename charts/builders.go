package charts

import (
	"math"

	"shopping-dashboard/engine"
	"shopping-dashboard/models"
)

// Options tunes panel construction.
type Options struct {
	TopN       int
	SampleSize int
}

// DefaultOptions matches the dashboard defaults: top 10 items, 500 sampled rows.
func DefaultOptions() Options {
	return Options{TopN: 10, SampleSize: 500}
}

// Input is everything one render pass feeds to the builders.
type Input struct {
	// Derived is the Derived View with every filter and selection applied.
	Derived engine.View
	// Upstream omits the item selection; the item bar chart draws from it.
	Upstream engine.View
	// TopItems are the item candidates computed from Upstream.
	TopItems []string
	// SelectedItems marks bars that are currently checked.
	SelectedItems []string
}

// Fixed messages shown in place of a chart.
const (
	MsgPie       = "Insufficient data for Pie Chart."
	MsgTreemap   = "Insufficient data for Treemap."
	MsgHeatmap   = "Insufficient data for Correlation Heatmap."
	MsgLine      = "Insufficient data for Line Chart."
	MsgParallel  = "Insufficient data for Parallel Coordinates Plot."
	MsgSunburst  = "Insufficient data or variety for Sunburst Chart. Need more than one Season."
	MsgBar       = "Insufficient data for Bar Chart."
	MsgSankey    = "Insufficient data or variety for Sankey Diagram. Need more than one Shipping Type."
	MsgScatter3D = "Insufficient data for 3D Scatter Plot."
)

// requirement is the minimum input a chart needs before it is drawn.
type requirement struct {
	minRows     int
	column      string
	minDistinct int
}

var requirements = map[Kind]requirement{
	KindPie:       {minRows: 1},
	KindTreemap:   {minRows: 1},
	KindHeatmap:   {minRows: 2},
	KindLine:      {minRows: 1},
	KindParallel:  {minRows: 2},
	KindSunburst:  {minRows: 1, column: models.ColSeason, minDistinct: 2},
	KindBar:       {minRows: 1},
	KindSankey:    {minRows: 1, column: models.ColShippingType, minDistinct: 2},
	KindScatter3D: {minRows: 2},
}

// Renderable reports whether a chart of kind k can be drawn from view.
func Renderable(k Kind, view engine.View) bool {
	req, ok := requirements[k]
	if !ok {
		return false
	}
	if view.Len() < req.minRows {
		return false
	}
	if req.column != "" && len(engine.UniqueValues(view, req.column)) < req.minDistinct {
		return false
	}
	return true
}

// palette is the qualitative color sequence for categorical series.
var palette = []string{
	"#8DD3C7", "#FFFFB3", "#BEBADA", "#FB8072", "#80B1D3",
	"#FDB462", "#B3DE69", "#FCCDE5", "#D9D9D9", "#BC80BD",
}

func colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func newPanel(k Kind, spec func() any, msg string) Panel {
	p := Panel{
		Number:  indexOf(k) + 1,
		Kind:    k,
		Title:   titles[k],
		Insight: insights[k],
	}
	if spec == nil {
		p.Message = msg
		return p
	}
	p.Spec = spec()
	return p
}

func indexOf(k Kind) int {
	for i, kind := range Kinds {
		if kind == k {
			return i
		}
	}
	return -1
}

func guard(k Kind, view engine.View, msg string, build func() any) Panel {
	if !Renderable(k, view) {
		return newPanel(k, nil, msg)
	}
	return newPanel(k, build, "")
}

// Build constructs all nine panels in dashboard order.
func Build(in Input, opts Options) []Panel {
	upstream := in.Upstream
	if upstream == nil {
		upstream = in.Derived
	}
	return []Panel{
		Pie(in.Derived),
		Treemap(in.Derived),
		Heatmap(in.Derived),
		Line(in.Derived),
		Parallel(in.Derived, opts.SampleSize),
		Sunburst(in.Derived),
		Bar(upstream, in.TopItems, in.SelectedItems),
		Sankey(in.Derived),
		Scatter3D(in.Derived, opts.SampleSize),
	}
}

// Pie shows total purchase amount per category.
func Pie(view engine.View) Panel {
	return guard(KindPie, view, MsgPie, func() any {
		groups := engine.SumBy(view, models.ColCategory, models.ColPurchaseAmount)
		return SeriesSpec{
			YAxis:  models.ColPurchaseAmount,
			Points: points(groups),
			Colors: colors(len(groups)),
		}
	})
}

// Treemap shows purchase amount by category and item.
func Treemap(view engine.View) Panel {
	return guard(KindTreemap, view, MsgTreemap, func() any {
		path := []string{models.ColCategory, models.ColItem}
		return HierarchySpec{Path: path, Nodes: roundTree(engine.SumByPath(view, models.ColPurchaseAmount, path...))}
	})
}

// Heatmap shows Pearson correlations between the numeric columns.
func Heatmap(view engine.View) Panel {
	return guard(KindHeatmap, view, MsgHeatmap, func() any {
		return HeatmapSpec{Matrix: engine.CorrelationMatrix(view, models.NumericColumns), Min: -1, Max: 1}
	})
}

// Line shows mean purchase amount per age group in bucket order.
func Line(view engine.View) Panel {
	return guard(KindLine, view, MsgLine, func() any {
		means := engine.MeanBy(view, engine.ColAgeGroup, models.ColPurchaseAmount)
		byLabel := make(map[string]float64, len(means))
		for _, g := range means {
			byLabel[g.Label] = g.Value
		}
		pts := make([]Point, 0, len(means))
		for _, label := range engine.AgeGroupLabels {
			if v, ok := byLabel[label]; ok {
				pts = append(pts, Point{Label: label, Value: round2(v)})
			}
		}
		return SeriesSpec{XAxis: engine.ColAgeGroup, YAxis: models.ColPurchaseAmount, Points: pts}
	})
}

// Parallel samples rows across the four numeric columns.
func Parallel(view engine.View, sampleSize int) Panel {
	return guard(KindParallel, view, MsgParallel, func() any {
		sample := engine.Sample(view, sampleSize)
		rows := make([][]float64, sample.Len())
		for i := range rows {
			t := sample.Row(i)
			row := make([]float64, len(models.NumericColumns))
			for c, col := range models.NumericColumns {
				row[c] = t.Numeric(col)
			}
			rows[i] = row
		}
		return ParallelSpec{Dimensions: models.NumericColumns, ColorBy: models.ColPurchaseAmount, Rows: rows}
	})
}

// Sunburst shows purchase amount by season, category and item.
func Sunburst(view engine.View) Panel {
	return guard(KindSunburst, view, MsgSunburst, func() any {
		path := []string{models.ColSeason, models.ColCategory, models.ColItem}
		return HierarchySpec{Path: path, Nodes: roundTree(engine.SumByPath(view, models.ColPurchaseAmount, path...))}
	})
}

// Bar shows purchase counts of the top items, flagging the selected ones.
func Bar(upstream engine.View, topItems, selected []string) Panel {
	return guard(KindBar, upstream, MsgBar, func() any {
		counts := make(map[string]int)
		for _, g := range engine.ValueCounts(upstream, models.ColItem) {
			counts[g.Label] = g.Count
		}
		chosen := make(map[string]bool, len(selected))
		for _, s := range selected {
			chosen[s] = true
		}
		pts := make([]Point, 0, len(topItems))
		for _, item := range topItems {
			pts = append(pts, Point{Label: item, Value: float64(counts[item]), Selected: chosen[item]})
		}
		return SeriesSpec{XAxis: models.ColItem, YAxis: "Purchases", Points: pts, Colors: colors(len(pts))}
	})
}

// sankeyLevels are the columns a purchase flows through, left to right.
var sankeyLevels = []string{models.ColCategory, models.ColShippingType, models.ColPaymentMethod}

// Sankey shows purchase amount flowing from category to shipping type to payment method.
func Sankey(view engine.View) Panel {
	return guard(KindSankey, view, MsgSankey, func() any {
		spec := SankeySpec{Levels: sankeyLevels}
		index := make(map[[2]string]int)
		node := func(level int, label string) int {
			key := [2]string{sankeyLevels[level], label}
			if i, ok := index[key]; ok {
				return i
			}
			index[key] = len(spec.Nodes)
			spec.Nodes = append(spec.Nodes, label)
			return index[key]
		}

		for level := 0; level+1 < len(sankeyLevels); level++ {
			for _, from := range engine.SumBy(view, sankeyLevels[level], models.ColPurchaseAmount) {
				src := node(level, from.Label)
				for _, to := range engine.SumBy(from.View, sankeyLevels[level+1], models.ColPurchaseAmount) {
					spec.Links = append(spec.Links, SankeyLink{
						Source: src,
						Target: node(level+1, to.Label),
						Value:  round2(to.Value),
					})
				}
			}
		}
		return spec
	})
}

// Scatter3D plots sampled rows by age, purchase amount and previous purchases,
// colored by review rating.
func Scatter3D(view engine.View, sampleSize int) Panel {
	return guard(KindScatter3D, view, MsgScatter3D, func() any {
		sample := engine.Sample(view, sampleSize)
		pts := make([]ScatterPoint, sample.Len())
		for i := range pts {
			t := sample.Row(i)
			pts[i] = ScatterPoint{
				X:     t.Age,
				Y:     t.PurchaseAmount,
				Z:     t.PreviousPurchases,
				Color: t.ReviewRating,
				Label: t.Item,
			}
		}
		return ScatterSpec{
			XAxis:   models.ColAge,
			YAxis:   models.ColPurchaseAmount,
			ZAxis:   models.ColPreviousPurchases,
			ColorBy: models.ColReviewRating,
			Points:  pts,
		}
	})
}

func points(groups []engine.Group) []Point {
	out := make([]Point, len(groups))
	for i, g := range groups {
		out[i] = Point{Label: g.Label, Value: round2(g.Value)}
	}
	return out
}

func roundTree(groups []engine.Group) []engine.Group {
	for i := range groups {
		groups[i].Value = round2(groups[i].Value)
		groups[i].Children = roundTree(groups[i].Children)
	}
	return groups
}
