package engine

import (
	"math"
	"sort"

	"shopping-dashboard/models"
)

// ColAgeGroup is a virtual categorical column derived from Age.
const ColAgeGroup = "Age Group"

// Group is one aggregated bucket. Children are populated by SumByPath.
type Group struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Count    int     `json:"count"`
	Children []Group `json:"children,omitempty"`
	View     View    `json:"-"`
}

// Label returns a categorical column value, resolving virtual columns.
func Label(t *models.Transaction, column string) string {
	if column == ColAgeGroup {
		g, _ := AgeGroup(t.Age)
		return g
	}
	return t.Categorical(column)
}

// groupBy partitions view by column in first-seen order. Rows with an empty
// label are skipped.
func groupBy(view View, column string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := Label(view.Row(i), column)
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		sub := newSubView(view, grouped[key])
		groups = append(groups, Group{Label: key, Count: sub.Len(), View: sub})
	}
	return groups
}

// SumBy sums measure per distinct value of column, in first-seen order.
func SumBy(view View, column, measure string) []Group {
	groups := groupBy(view, column)
	for i := range groups {
		groups[i].Value = Sum(groups[i].View, measure)
	}
	return groups
}

// MeanBy averages measure per distinct value of column, in first-seen order.
func MeanBy(view View, column, measure string) []Group {
	groups := groupBy(view, column)
	for i := range groups {
		groups[i].Value = Mean(groups[i].View, measure)
	}
	return groups
}

// SumByPath builds a hierarchy of sums, one level per column.
func SumByPath(view View, measure string, path ...string) []Group {
	if len(path) == 0 {
		return nil
	}
	groups := SumBy(view, path[0], measure)
	if len(path) > 1 {
		for i := range groups {
			groups[i].Children = SumByPath(groups[i].View, measure, path[1:]...)
		}
	}
	return groups
}

// ValueCounts counts rows per value of column, highest first. Ties keep
// first-seen order.
func ValueCounts(view View, column string) []Group {
	groups := groupBy(view, column)
	for i := range groups {
		groups[i].Value = float64(groups[i].Count)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	return groups
}

// TopN returns the n most frequent values of column. Ties are broken by the
// row where each value first appears.
func TopN(view View, column string, n int) []string {
	counts := ValueCounts(view, column)
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	out := make([]string, len(counts))
	for i, g := range counts {
		out[i] = g.Label
	}
	return out
}

// UniqueValues returns the distinct non-empty values of column in first-seen order.
func UniqueValues(view View, column string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < view.Len(); i++ {
		val := Label(view.Row(i), column)
		if val != "" && !seen[val] {
			seen[val] = true
			out = append(out, val)
		}
	}
	return out
}

// Sum adds a numeric column across the view.
func Sum(view View, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Row(i).Numeric(measure)
	}
	return total
}

// Mean averages a numeric column; an empty view averages to 0.
func Mean(view View, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	return Sum(view, measure) / float64(view.Len())
}

// ColumnRange returns the min/max of a numeric column as a set range.
func ColumnRange(view View, measure string) (models.NumericRange, bool) {
	if view.Len() == 0 {
		return models.NumericRange{}, false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < view.Len(); i++ {
		v := view.Row(i).Numeric(measure)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return models.NewRange(lo, hi), true
}

// Sample picks at most n rows spread evenly across the view, always including
// the first row. The result is deterministic for a given view and n.
func Sample(view View, n int) View {
	total := view.Len()
	if n <= 0 || total <= n {
		return view
	}
	indices := make([]int, n)
	for k := 0; k < n; k++ {
		indices[k] = k * total / n
	}
	return newSubView(view, indices)
}
