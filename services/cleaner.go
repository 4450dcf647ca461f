package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"shopping-dashboard/models"
	"shopping-dashboard/utils"
)

// numberRegexp captures the first numeric value in a cell such as "$53.00" or "4.5 stars".
var numberRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Cleaner transforms RawTransactions into typed, validated Transactions.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw rows and returns the rows that carry every required field.
// Rows with a repeated Customer ID keep the first occurrence.
func (c *Cleaner) Clean(raw []models.RawTransaction) []models.Transaction {
	seen := make(map[int64]struct{})
	result := make([]models.Transaction, 0, len(raw))

	for _, r := range raw {
		if missing := missingRequired(r); missing != "" {
			c.logger.Warn("[cleaner] Dropping row %d: missing %s", r.Line, missing)
			continue
		}

		age, okAge := parseNumber(r.Get(models.ColAge))
		amount, okAmount := parseNumber(r.Get(models.ColPurchaseAmount))
		if !okAge || !okAmount {
			c.logger.Warn("[cleaner] Dropping row %d: unparseable age %q or amount %q",
				r.Line, r.Get(models.ColAge), r.Get(models.ColPurchaseAmount))
			continue
		}

		id, hasID := parseID(r.Get(models.ColCustomerID))
		if hasID {
			if _, dup := seen[id]; dup {
				c.logger.Debug("[cleaner] Duplicate customer ID skipped: %d", id)
				continue
			}
			seen[id] = struct{}{}
		}

		rating, _ := parseNumber(r.Get(models.ColReviewRating))
		previous, _ := parseNumber(r.Get(models.ColPreviousPurchases))

		result = append(result, models.Transaction{
			CustomerID:        id,
			Age:               age,
			Gender:            normaliseText(r.Get(models.ColGender)),
			Item:              normaliseText(r.Get(models.ColItem)),
			Category:          normaliseText(r.Get(models.ColCategory)),
			PurchaseAmount:    amount,
			Location:          normaliseText(r.Get(models.ColLocation)),
			Size:              normaliseText(r.Get(models.ColSize)),
			Color:             normaliseText(r.Get(models.ColColor)),
			Season:            normaliseText(r.Get(models.ColSeason)),
			ReviewRating:      clampRating(rating),
			Subscription:      normaliseText(r.Get(models.ColSubscription)),
			ShippingType:      normaliseText(r.Get(models.ColShippingType)),
			DiscountApplied:   normaliseText(r.Get(models.ColDiscountApplied)),
			PromoCodeUsed:     normaliseText(r.Get(models.ColPromoCodeUsed)),
			PreviousPurchases: previous,
			PaymentMethod:     normaliseText(r.Get(models.ColPaymentMethod)),
			Frequency:         normaliseText(r.Get(models.ColFrequency)),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d transactions (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

func missingRequired(r models.RawTransaction) string {
	for _, col := range models.RequiredColumns {
		if normaliseText(r.Get(col)) == "" {
			return col
		}
	}
	return ""
}

// parseNumber extracts the first number from a cell, ignoring currency symbols
// and thousands separators.
func parseNumber(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// clampRating keeps ratings on the 0.0–5.0 scale; anything else counts as unrated.
func clampRating(v float64) float64 {
	if v < 0 || v > 5 {
		return 0
	}
	return v
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
