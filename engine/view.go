// Package engine narrows the Source Table into Derived Views and computes the
// aggregates the dashboard panels are drawn from.
//
// Views never copy rows: a filtered view is a list of indices into its parent.
package engine

import "shopping-dashboard/models"

// View provides indexed, read-only access to transactions.
type View interface {
	Len() int
	Row(i int) *models.Transaction
}

// TableView wraps the loaded Source Table.
type TableView struct {
	rows []models.Transaction
}

// NewTableView wraps rows without copying them. Callers must not mutate rows afterwards.
func NewTableView(rows []models.Transaction) *TableView {
	return &TableView{rows: rows}
}

func (v *TableView) Len() int { return len(v.rows) }

func (v *TableView) Row(i int) *models.Transaction { return &v.rows[i] }

// SubView is a filtered subset of a parent view.
type SubView struct {
	parent  View
	indices []int
}

func newSubView(parent View, indices []int) View {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Row(i int) *models.Transaction { return v.parent.Row(v.indices[i]) }

// Where returns the rows of view for which keep is true, in their original order.
func Where(view View, keep func(*models.Transaction) bool) View {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(view.Row(i)) {
			indices = append(indices, i)
		}
	}
	if len(indices) == n {
		return view
	}
	return newSubView(view, indices)
}

// Rows materializes a view into a slice of pointers, mostly for tests and reports.
func Rows(view View) []*models.Transaction {
	out := make([]*models.Transaction, view.Len())
	for i := range out {
		out[i] = view.Row(i)
	}
	return out
}
