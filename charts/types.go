// Package charts turns Derived Views into render-ready panel specs for the
// nine dashboard charts. Panels whose input is too small carry a fixed message
// instead of a spec.
package charts

import "shopping-dashboard/engine"

// Kind identifies a chart type.
type Kind string

const (
	KindPie       Kind = "pie"
	KindTreemap   Kind = "treemap"
	KindHeatmap   Kind = "heatmap"
	KindLine      Kind = "line"
	KindParallel  Kind = "parallel"
	KindSunburst  Kind = "sunburst"
	KindBar       Kind = "bar"
	KindSankey    Kind = "sankey"
	KindScatter3D Kind = "scatter3d"
)

// Kinds lists the charts in dashboard order.
var Kinds = []Kind{
	KindPie, KindTreemap, KindHeatmap, KindLine, KindParallel,
	KindSunburst, KindBar, KindSankey, KindScatter3D,
}

// Panel is one dashboard section. Exactly one of Spec or Message is set.
type Panel struct {
	Number  int     `json:"number"`
	Kind    Kind    `json:"kind"`
	Title   string  `json:"title"`
	Spec    any     `json:"spec,omitempty"`
	Message string  `json:"message,omitempty"`
	Insight Insight `json:"insight"`
}

// Rendered reports whether the panel carries a chart rather than a message.
func (p Panel) Rendered() bool { return p.Message == "" }

// Insight is the static explanatory text shown under a chart.
type Insight struct {
	Purpose       string `json:"purpose"`
	Insight       string `json:"insight"`
	BusinessValue string `json:"businessValue"`
}

// Point is a labelled value.
type Point struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Selected bool    `json:"selected,omitempty"`
}

// SeriesSpec backs pie, line and bar charts.
type SeriesSpec struct {
	XAxis  string   `json:"xAxis,omitempty"`
	YAxis  string   `json:"yAxis,omitempty"`
	Points []Point  `json:"points"`
	Colors []string `json:"colors,omitempty"`
}

// HierarchySpec backs treemap and sunburst charts.
type HierarchySpec struct {
	Path  []string       `json:"path"`
	Nodes []engine.Group `json:"nodes"`
}

// HeatmapSpec backs the correlation heatmap.
type HeatmapSpec struct {
	Matrix engine.Matrix `json:"matrix"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
}

// ParallelSpec backs the parallel-coordinates plot; each row lines up with Dimensions.
type ParallelSpec struct {
	Dimensions []string    `json:"dimensions"`
	ColorBy    string      `json:"colorBy"`
	Rows       [][]float64 `json:"rows"`
}

// SankeyLink is a weighted flow between two node indices.
type SankeyLink struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// SankeySpec backs the Sankey diagram.
type SankeySpec struct {
	Levels []string     `json:"levels"`
	Nodes  []string     `json:"nodes"`
	Links  []SankeyLink `json:"links"`
}

// ScatterPoint is one 3-D marker.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Color float64 `json:"color"`
	Label string  `json:"label,omitempty"`
}

// ScatterSpec backs the 3-D scatter plot.
type ScatterSpec struct {
	XAxis   string         `json:"xAxis"`
	YAxis   string         `json:"yAxis"`
	ZAxis   string         `json:"zAxis"`
	ColorBy string         `json:"colorBy"`
	Points  []ScatterPoint `json:"points"`
}
