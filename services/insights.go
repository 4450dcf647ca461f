package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"shopping-dashboard/engine"
	"shopping-dashboard/models"
	"shopping-dashboard/utils"
)

// InsightService computes the KPI summary shown above the charts and printed
// by the report command.
type InsightService struct {
	logger *utils.Logger
	topN   int
}

func NewInsightService(logger *utils.Logger, topN int) *InsightService {
	if topN <= 0 {
		topN = 10
	}
	return &InsightService{logger: logger, topN: topN}
}

func (s *InsightService) Generate(view engine.View) *models.InsightReport {
	report := &models.InsightReport{}
	if view.Len() == 0 {
		return report
	}

	report.TotalPurchases = view.Len()
	report.TotalRevenue = round2(engine.Sum(view, models.ColPurchaseAmount))
	report.AveragePurchase = round2(engine.Mean(view, models.ColPurchaseAmount))

	if r, ok := engine.ColumnRange(view, models.ColPurchaseAmount); ok {
		report.MinPurchase = round2(r.Min)
		report.MaxPurchase = round2(r.Max)
	}

	// Ratings of 0 mean "unrated" and stay out of the average.
	customers := make(map[int64]struct{})
	var ratingSum float64
	var rated int
	for i := 0; i < view.Len(); i++ {
		t := view.Row(i)
		if t.CustomerID != 0 {
			customers[t.CustomerID] = struct{}{}
		}
		if t.ReviewRating > 0 {
			ratingSum += t.ReviewRating
			rated++
		}
	}
	report.UniqueCustomers = len(customers)
	if rated > 0 {
		report.AverageRating = round2(ratingSum / float64(rated))
	}

	best := math.Inf(-1)
	for _, g := range engine.SumBy(view, models.ColCategory, models.ColPurchaseAmount) {
		report.ByCategory = append(report.ByCategory, models.CategoryRevenue{
			Category:  g.Label,
			Revenue:   round2(g.Value),
			Purchases: g.Count,
		})
		if g.Value > best {
			best = g.Value
			report.TopCategory = g.Label
		}
	}

	report.TopItems = engine.TopN(view, models.ColItem, s.topN)

	if s.logger != nil {
		s.logger.Debug("[insights] %d purchases, revenue %.2f, top category %q",
			report.TotalPurchases, report.TotalRevenue, report.TopCategory)
	}
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 SHOPPING TRENDS INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	if r.TotalPurchases == 0 {
		fmt.Fprintf(w, "  No purchases match the current filters\n\n")
		return
	}

	overview := table.NewWriter()
	overview.SetOutputMirror(w)
	overview.SetTitle("Overview")
	overview.SetStyle(table.StyleLight)
	overview.AppendRows([]table.Row{
		{"Purchases", r.TotalPurchases},
		{"Unique customers", r.UniqueCustomers},
		{"Total revenue", fmt.Sprintf("$%.2f", r.TotalRevenue)},
		{"Average purchase", fmt.Sprintf("$%.2f", r.AveragePurchase)},
		{"Purchase range", fmt.Sprintf("$%.2f – $%.2f", r.MinPurchase, r.MaxPurchase)},
		{"Average rating", fmt.Sprintf("%.2f ★", r.AverageRating)},
		{"Top category", r.TopCategory},
	})
	overview.Render()
	fmt.Fprintln(w)

	byCat := table.NewWriter()
	byCat.SetOutputMirror(w)
	byCat.SetTitle("Revenue by Category")
	byCat.SetStyle(table.StyleLight)
	byCat.AppendHeader(table.Row{"Category", "Purchases", "Revenue", "Share"})
	for _, c := range r.ByCategory {
		share := 0.0
		if r.TotalRevenue > 0 {
			share = c.Revenue / r.TotalRevenue * 100
		}
		byCat.AppendRow(table.Row{c.Category, c.Purchases, fmt.Sprintf("$%.2f", c.Revenue), fmt.Sprintf("%.1f%%", share)})
	}
	byCat.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	byCat.Render()
	fmt.Fprintln(w)

	if len(r.TopItems) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Top %d Items\033[0m\n", len(r.TopItems))
		for i, item := range r.TopItems {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %s\n", i+1, truncate(item, 40))
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
