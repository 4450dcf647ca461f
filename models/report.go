package models

// CategoryRevenue is one row of the per-category breakdown.
type CategoryRevenue struct {
	Category  string
	Revenue   float64
	Purchases int
}

// InsightReport holds the KPI summary computed over a Derived View.
type InsightReport struct {
	TotalPurchases  int
	UniqueCustomers int
	TotalRevenue    float64
	AveragePurchase float64
	AverageRating   float64
	MinPurchase     float64
	MaxPurchase     float64
	TopCategory     string
	ByCategory      []CategoryRevenue
	TopItems        []string
}
