package dashboard

import (
	"github.com/hashicorp/go-set/v2"

	"shopping-dashboard/models"
	"shopping-dashboard/selection"
)

// Event is one user interaction fed into Dashboard.Update.
type Event interface {
	apply(d *Dashboard, s *Session) bool
	name() string
}

// ReconcileEvent reports the rendered checkbox states of one dimension.
type ReconcileEvent struct {
	Dimension models.Dimension
	Widgets   []selection.WidgetState
}

// ClearEvent empties one Selection Set.
type ClearEvent struct {
	Dimension models.Dimension
}

// SidebarEvent replaces the sidebar filters.
type SidebarEvent struct {
	Filters models.SidebarFilters
}

// ResetEvent restores default sidebar filters and clears every selection.
type ResetEvent struct{}

// RefreshEvent changes nothing; it asks for a fresh frame.
type RefreshEvent struct{}

func (e ReconcileEvent) apply(d *Dashboard, s *Session) bool {
	if !valid(e.Dimension) {
		d.logger.Warn("reconcile: unknown dimension %q ignored", e.Dimension)
		return false
	}
	return s.Selection.Reconcile(e.Dimension, e.Widgets)
}

func (e ReconcileEvent) name() string { return "reconcile " + string(e.Dimension) }

func (e ClearEvent) apply(d *Dashboard, s *Session) bool {
	if !valid(e.Dimension) {
		d.logger.Warn("clear: unknown dimension %q ignored", e.Dimension)
		return false
	}
	return s.Selection.Clear(e.Dimension)
}

func (e ClearEvent) name() string { return "clear " + string(e.Dimension) }

func (e SidebarEvent) apply(_ *Dashboard, s *Session) bool {
	if sameSidebar(s.Sidebar, e.Filters) {
		return false
	}
	s.Sidebar = e.Filters
	return true
}

func (SidebarEvent) name() string { return "sidebar" }

func (ResetEvent) apply(d *Dashboard, s *Session) bool {
	s.Sidebar = d.defaults
	return s.Selection.ClearAll()
}

func (ResetEvent) name() string { return "reset" }

func (RefreshEvent) apply(*Dashboard, *Session) bool { return false }

func (RefreshEvent) name() string { return "refresh" }

func valid(dim models.Dimension) bool {
	_, err := models.ParseDimension(string(dim))
	return err == nil
}

func sameSidebar(a, b models.SidebarFilters) bool {
	return a.Age == b.Age && a.PurchaseAmount == b.PurchaseAmount &&
		set.From(a.Genders).Equal(set.From(b.Genders)) &&
		set.From(a.Seasons).Equal(set.From(b.Seasons)) &&
		set.From(a.Categories).Equal(set.From(b.Categories))
}
