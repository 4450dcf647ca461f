package models

import (
	"errors"
	"fmt"
)

// ErrUnknownDimension is returned when a dimension name does not name a Selection Set.
var ErrUnknownDimension = errors.New("unknown selection dimension")

// Dimension names one of the user-toggleable Selection Sets.
type Dimension string

const (
	DimCategories Dimension = "categories"
	DimAgeGroups  Dimension = "ageGroups"
	DimItems      Dimension = "items"
)

// Dimensions lists all selection dimensions in display order.
var Dimensions = []Dimension{DimCategories, DimAgeGroups, DimItems}

// ParseDimension validates a dimension name coming from a request path or form.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("parse dimension %q: %w", s, ErrUnknownDimension)
}

// Title is the human label used for checkbox headings and clear buttons.
func (d Dimension) Title() string {
	switch d {
	case DimCategories:
		return "Categories"
	case DimAgeGroups:
		return "Age Groups"
	case DimItems:
		return "Items"
	}
	return string(d)
}

// NumericRange is an inclusive [Min, Max] bound. The zero value is unset.
type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Set bool    `json:"set"`
}

// NewRange returns a set range, swapping the bounds if they arrive reversed.
func NewRange(min, max float64) NumericRange {
	if min > max {
		min, max = max, min
	}
	return NumericRange{Min: min, Max: max, Set: true}
}

// Contains reports whether v lies within the range. An unset range contains everything.
func (r NumericRange) Contains(v float64) bool {
	if !r.Set {
		return true
	}
	return v >= r.Min && v <= r.Max
}

// SidebarFilters are the global filters applied before any Selection Set.
// Empty sets and unset ranges impose no restriction.
type SidebarFilters struct {
	Genders        []string     `json:"genders"`
	Seasons        []string     `json:"seasons"`
	Categories     []string     `json:"categories"`
	Age            NumericRange `json:"age"`
	PurchaseAmount NumericRange `json:"purchaseAmount"`
}

// IsEmpty reports whether no sidebar predicate is active.
func (f SidebarFilters) IsEmpty() bool {
	return len(f.Genders) == 0 && len(f.Seasons) == 0 && len(f.Categories) == 0 &&
		!f.Age.Set && !f.PurchaseAmount.Set
}
