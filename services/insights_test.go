package services

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"shopping-dashboard/engine"
	"shopping-dashboard/models"
)

func sampleTransactions() engine.View {
	return engine.NewTableView([]models.Transaction{
		{CustomerID: 1, Item: "Coat", Category: "Outerwear", PurchaseAmount: 200, ReviewRating: 4.9},
		{CustomerID: 2, Item: "Blouse", Category: "Clothing", PurchaseAmount: 50, ReviewRating: 4.5},
		{CustomerID: 3, Item: "Coat", Category: "Outerwear", PurchaseAmount: 120, ReviewRating: 4.8},
		{CustomerID: 4, Item: "Boots", Category: "Footwear", PurchaseAmount: 300, ReviewRating: 0},
		{CustomerID: 4, Item: "Blouse", Category: "Clothing", PurchaseAmount: 30, ReviewRating: 4.6},
	})
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleTransactions())
	if r.TotalPurchases != 5 {
		t.Errorf("TotalPurchases: got %d, want 5", r.TotalPurchases)
	}
	if r.UniqueCustomers != 4 {
		t.Errorf("UniqueCustomers: got %d, want 4", r.UniqueCustomers)
	}
}

func TestInsightRevenue(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleTransactions())
	if r.TotalRevenue != 700 {
		t.Errorf("TotalRevenue: got %.2f, want 700", r.TotalRevenue)
	}
	if r.AveragePurchase != 140 {
		t.Errorf("AveragePurchase: got %.2f, want 140", r.AveragePurchase)
	}
	if r.MinPurchase != 30 || r.MaxPurchase != 300 {
		t.Errorf("range: got %.2f–%.2f, want 30–300", r.MinPurchase, r.MaxPurchase)
	}
}

func TestInsightAverageRatingSkipsUnrated(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleTransactions())
	if r.AverageRating != 4.7 {
		t.Errorf("AverageRating: got %.2f, want 4.70", r.AverageRating)
	}
}

func TestInsightTopCategory(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleTransactions())
	if r.TopCategory != "Outerwear" {
		t.Errorf("TopCategory: got %q, want %q", r.TopCategory, "Outerwear")
	}
	if len(r.ByCategory) != 3 {
		t.Errorf("ByCategory len: got %d, want 3", len(r.ByCategory))
	}
}

func TestInsightTopItems(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)
	r := svc.Generate(sampleTransactions())
	if strings.Join(r.TopItems, ",") != "Coat,Blouse" {
		t.Errorf("TopItems: got %v, want [Coat Blouse]", r.TopItems)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(engine.NewTableView(nil))
	if r.TotalPurchases != 0 {
		t.Errorf("expected 0 purchases for empty input")
	}

	var buf bytes.Buffer
	svc.Print(&buf, r)
	if !strings.Contains(buf.String(), "No purchases") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleTransactions()))

	out := buf.String()
	for _, want := range []string{"Revenue by Category", "Outerwear", "$700.00", "Top 3 Items"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Coat", 10, "Coat"},
		{"Leather Jacket", 10, "Leather..."},
		{"Écharpe en laine", 10, "Écharpe..."},
		{"日本の着物と帯のセット", 8, "日本の着物..."},
	}
	for _, c := range cases {
		got := truncate(c.in, c.max)
		if got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", c.in, c.max)
		}
	}
}
