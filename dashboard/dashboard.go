// Package dashboard runs the explicit update cycle: an event is applied to a
// session, stale selections are purged, and a complete frame is built from the
// settled state.
package dashboard

import (
	"github.com/hashicorp/go-set/v2"

	"shopping-dashboard/charts"
	"shopping-dashboard/engine"
	"shopping-dashboard/models"
	"shopping-dashboard/selection"
	"shopping-dashboard/services"
	"shopping-dashboard/utils"
)

// Session is the per-user state. It is not safe for concurrent use.
type Session struct {
	Sidebar   models.SidebarFilters
	Selection *selection.State
}

// Dashboard holds the immutable Source Table and everything derived from it
// once. It may be shared by any number of sessions.
type Dashboard struct {
	table    engine.View
	opts     charts.Options
	logger   *utils.Logger
	insights *services.InsightService

	categories []string
	choices    Choices
	defaults   models.SidebarFilters
}

// Choices are the values the sidebar offers, taken from the whole table.
type Choices struct {
	Genders        []string            `json:"genders"`
	Seasons        []string            `json:"seasons"`
	Categories     []string            `json:"categories"`
	Age            models.NumericRange `json:"age"`
	PurchaseAmount models.NumericRange `json:"purchaseAmount"`
}

// New prepares a dashboard over table.
func New(table engine.View, opts charts.Options, logger *utils.Logger) *Dashboard {
	if opts.TopN <= 0 || opts.SampleSize <= 0 {
		def := charts.DefaultOptions()
		if opts.TopN <= 0 {
			opts.TopN = def.TopN
		}
		if opts.SampleSize <= 0 {
			opts.SampleSize = def.SampleSize
		}
	}

	d := &Dashboard{
		table:    table,
		opts:     opts,
		logger:   logger.With("dashboard"),
		insights: services.NewInsightService(logger, opts.TopN),
	}

	d.categories = engine.UniqueValues(table, models.ColCategory)
	d.choices = Choices{
		Genders:    engine.UniqueValues(table, models.ColGender),
		Seasons:    engine.UniqueValues(table, models.ColSeason),
		Categories: d.categories,
	}
	if r, ok := engine.ColumnRange(table, models.ColAge); ok {
		d.choices.Age = r
	}
	if r, ok := engine.ColumnRange(table, models.ColPurchaseAmount); ok {
		d.choices.PurchaseAmount = r
	}
	d.defaults = models.SidebarFilters{Age: d.choices.Age, PurchaseAmount: d.choices.PurchaseAmount}

	d.logger.Info("Loaded %d transactions across %d categories", table.Len(), len(d.categories))
	return d
}

// NewSession returns a session with default sidebar filters and empty selections.
func (d *Dashboard) NewSession() *Session {
	return &Session{Sidebar: d.defaults, Selection: selection.NewState()}
}

// Defaults returns the sidebar filters a new session starts with.
func (d *Dashboard) Defaults() models.SidebarFilters { return d.defaults }

// Choices returns the sidebar options.
func (d *Dashboard) Choices() Choices { return d.choices }

// Table returns the Source Table.
func (d *Dashboard) Table() engine.View { return d.table }

// Update applies ev to s, purges selections that no longer have a checkbox,
// and builds the frame from the resulting state. It reports whether the
// session changed. Panels are built only after the state has settled.
func (d *Dashboard) Update(s *Session, ev Event) (Frame, bool) {
	if ev == nil {
		ev = RefreshEvent{}
	}
	changed := ev.apply(d, s)
	if d.purge(s) {
		changed = true
	}

	frame := d.frame(s)
	d.logger.Debug("%s: changed=%t rows=%d counter=%d", ev.name(), changed, frame.Rows, s.Selection.Counter())
	return frame, changed
}

// Candidates returns the labels that currently have a checkbox for dim.
func (d *Dashboard) Candidates(s *Session, dim models.Dimension) []string {
	switch dim {
	case models.DimCategories:
		return d.categories
	case models.DimAgeGroups:
		return engine.AgeGroupLabels
	case models.DimItems:
		upstream := engine.UpstreamItemView(d.table, s.Sidebar, s.Selection)
		return engine.TopN(upstream, models.ColItem, d.opts.TopN)
	}
	return nil
}

// Widgets builds the full checkbox state list for dim from the labels a client
// reported as checked. Labels without a checkbox are ignored.
func (d *Dashboard) Widgets(s *Session, dim models.Dimension, checked []string) []selection.WidgetState {
	on := set.From(checked)
	candidates := d.Candidates(s, dim)
	out := make([]selection.WidgetState, len(candidates))
	for i, label := range candidates {
		out[i] = selection.WidgetState{Label: label, Checked: on.Contains(label)}
	}
	return out
}

// purge drops stale labels. Categories and age groups are purged first because
// the item candidates depend on them; items never feed back, so one pass settles.
func (d *Dashboard) purge(s *Session) bool {
	changed := s.Selection.Purge(models.DimCategories, d.categories)
	if s.Selection.Purge(models.DimAgeGroups, engine.AgeGroupLabels) {
		changed = true
	}
	if !s.Selection.Empty(models.DimItems) {
		if s.Selection.Purge(models.DimItems, d.Candidates(s, models.DimItems)) {
			d.logger.Debug("purged stale item selections")
			changed = true
		}
	}
	return changed
}
