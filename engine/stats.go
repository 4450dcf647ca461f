package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Matrix is a square correlation matrix. A nil cell means the coefficient is
// undefined, which happens when a column has zero variance.
type Matrix struct {
	Columns []string     `json:"columns"`
	Cells   [][]*float64 `json:"cells"`
}

// CorrelationMatrix computes pairwise Pearson coefficients between numeric columns.
func CorrelationMatrix(view View, columns []string) Matrix {
	series := make([][]float64, len(columns))
	for c, col := range columns {
		xs := make([]float64, view.Len())
		for i := range xs {
			xs[i] = view.Row(i).Numeric(col)
		}
		series[c] = xs
	}

	m := Matrix{Columns: columns, Cells: make([][]*float64, len(columns))}
	for i := range columns {
		m.Cells[i] = make([]*float64, len(columns))
		for j := range columns {
			if view.Len() < 2 {
				continue
			}
			r := stat.Correlation(series[i], series[j], nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				continue
			}
			r = math.Round(r*100) / 100
			m.Cells[i][j] = &r
		}
	}
	return m
}
