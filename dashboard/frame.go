package dashboard

import (
	"shopping-dashboard/charts"
	"shopping-dashboard/engine"
	"shopping-dashboard/models"
	"shopping-dashboard/selection"
)

// Checkbox is one rendered selection widget.
type Checkbox struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Key     string `json:"key"`
}

// CheckboxList is the widget column next to a chart.
type CheckboxList struct {
	Dimension models.Dimension `json:"dimension"`
	Title     string           `json:"title"`
	Options   []Checkbox       `json:"options"`
}

// Frame is everything one render shows.
type Frame struct {
	Summary    *models.InsightReport `json:"summary"`
	Checkboxes []CheckboxList        `json:"checkboxes"`
	Sidebar    models.SidebarFilters `json:"sidebar"`
	Choices    Choices               `json:"choices"`
	Selection  selection.Snapshot    `json:"selection"`
	Panels     []charts.Panel        `json:"panels"`
	Rows       int                   `json:"rows"`
	TotalRows  int                   `json:"totalRows"`
}

// CheckboxesFor returns the list for dim, or nil.
func (f Frame) CheckboxesFor(dim models.Dimension) *CheckboxList {
	for i := range f.Checkboxes {
		if f.Checkboxes[i].Dimension == dim {
			return &f.Checkboxes[i]
		}
	}
	return nil
}

// Panel returns the panel of kind k, or nil.
func (f Frame) Panel(k charts.Kind) *charts.Panel {
	for i := range f.Panels {
		if f.Panels[i].Kind == k {
			return &f.Panels[i]
		}
	}
	return nil
}

func (d *Dashboard) frame(s *Session) Frame {
	derived := engine.ComputeDerivedView(d.table, s.Sidebar, s.Selection)
	upstream := engine.UpstreamItemView(d.table, s.Sidebar, s.Selection)
	topItems := engine.TopN(upstream, models.ColItem, d.opts.TopN)

	lists := make([]CheckboxList, 0, len(models.Dimensions))
	for _, dim := range models.Dimensions {
		labels := topItems
		if dim != models.DimItems {
			labels = d.Candidates(s, dim)
		}
		list := CheckboxList{Dimension: dim, Title: dim.Title(), Options: make([]Checkbox, len(labels))}
		for i, label := range labels {
			list.Options[i] = Checkbox{
				Label:   label,
				Checked: s.Selection.IsChecked(dim, label),
				Key:     s.Selection.WidgetKey(dim, label),
			}
		}
		lists = append(lists, list)
	}

	panels := charts.Build(charts.Input{
		Derived:       derived,
		Upstream:      upstream,
		TopItems:      topItems,
		SelectedItems: s.Selection.Selected(models.DimItems),
	}, d.opts)

	return Frame{
		Summary:    d.insights.Generate(derived),
		Checkboxes: lists,
		Sidebar:    s.Sidebar,
		Choices:    d.choices,
		Selection:  s.Selection.Snapshot(),
		Panels:     panels,
		Rows:       derived.Len(),
		TotalRows:  d.table.Len(),
	}
}
