package models

// RawTransaction holds one unprocessed row exactly as a dataset loader read it.
// Cells are keyed by their CSV header; the Cleaner turns these into Transactions.
type RawTransaction struct {
	Cells map[string]string
	// Line is the 1-based source row, used only for log messages.
	Line int
}

// Get returns the cell value for a column, or "" when absent.
func (r RawTransaction) Get(column string) string {
	if r.Cells == nil {
		return ""
	}
	return r.Cells[column]
}

// Transaction is one cleaned, typed purchase record of the Source Table.
type Transaction struct {
	CustomerID        int64
	Age               float64
	Gender            string
	Item              string
	Category          string
	PurchaseAmount    float64
	Location          string
	Size              string
	Color             string
	Season            string
	ReviewRating      float64
	Subscription      string
	ShippingType      string
	DiscountApplied   string
	PromoCodeUsed     string
	PreviousPurchases float64
	PaymentMethod     string
	Frequency         string
}

// Column headers of the shopping-trends dataset.
const (
	ColCustomerID        = "Customer ID"
	ColAge               = "Age"
	ColGender            = "Gender"
	ColItem              = "Item Purchased"
	ColCategory          = "Category"
	ColPurchaseAmount    = "Purchase Amount (USD)"
	ColLocation          = "Location"
	ColSize              = "Size"
	ColColor             = "Color"
	ColSeason            = "Season"
	ColReviewRating      = "Review Rating"
	ColSubscription      = "Subscription Status"
	ColShippingType      = "Shipping Type"
	ColDiscountApplied   = "Discount Applied"
	ColPromoCodeUsed     = "Promo Code Used"
	ColPreviousPurchases = "Previous Purchases"
	ColPaymentMethod     = "Payment Method"
	ColFrequency         = "Frequency of Purchases"
)

// Columns lists every known header in dataset order.
var Columns = []string{
	ColCustomerID, ColAge, ColGender, ColItem, ColCategory, ColPurchaseAmount,
	ColLocation, ColSize, ColColor, ColSeason, ColReviewRating, ColSubscription,
	ColShippingType, ColDiscountApplied, ColPromoCodeUsed, ColPreviousPurchases,
	ColPaymentMethod, ColFrequency,
}

// RequiredColumns must be present and non-empty for a row to survive cleaning.
var RequiredColumns = []string{
	ColAge, ColGender, ColItem, ColCategory, ColPurchaseAmount, ColSeason,
}

// NumericColumns are the measures used by the correlation and multi-axis charts.
var NumericColumns = []string{
	ColAge, ColPurchaseAmount, ColReviewRating, ColPreviousPurchases,
}

// Numeric returns the value of a numeric column by header name.
func (t *Transaction) Numeric(column string) float64 {
	switch column {
	case ColAge:
		return t.Age
	case ColPurchaseAmount:
		return t.PurchaseAmount
	case ColReviewRating:
		return t.ReviewRating
	case ColPreviousPurchases:
		return t.PreviousPurchases
	case ColCustomerID:
		return float64(t.CustomerID)
	}
	return 0
}

// Categorical returns the value of a categorical column by header name.
func (t *Transaction) Categorical(column string) string {
	switch column {
	case ColGender:
		return t.Gender
	case ColItem:
		return t.Item
	case ColCategory:
		return t.Category
	case ColLocation:
		return t.Location
	case ColSize:
		return t.Size
	case ColColor:
		return t.Color
	case ColSeason:
		return t.Season
	case ColSubscription:
		return t.Subscription
	case ColShippingType:
		return t.ShippingType
	case ColDiscountApplied:
		return t.DiscountApplied
	case ColPromoCodeUsed:
		return t.PromoCodeUsed
	case ColPaymentMethod:
		return t.PaymentMethod
	case ColFrequency:
		return t.Frequency
	}
	return ""
}
