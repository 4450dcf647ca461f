// Package selection owns the user-toggleable Selection Sets of one dashboard
// session and reconciles them against the checkbox states a render reports.
package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v2"

	"shopping-dashboard/models"
)

// WidgetState is one rendered checkbox: its label and whether it is checked.
type WidgetState struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// State holds the three Selection Sets and the reset counter of a session.
// It is not safe for concurrent use; callers serialize access per session.
type State struct {
	sets    map[models.Dimension]*set.Set[string]
	counter uint64
}

// NewState returns empty Selection Sets and a zero reset counter.
func NewState() *State {
	s := &State{sets: make(map[models.Dimension]*set.Set[string], len(models.Dimensions))}
	for _, d := range models.Dimensions {
		s.sets[d] = set.New[string](0)
	}
	return s
}

func (s *State) get(dim models.Dimension) *set.Set[string] {
	cur, ok := s.sets[dim]
	if !ok {
		// Request input goes through models.ParseDimension first.
		panic("selection: unknown dimension " + string(dim))
	}
	return cur
}

// Reconcile replaces the stored selection for dim with the checked labels in
// widgets when the two differ as sets. It reports whether the selection changed;
// a true result is the signal that another render is needed.
//
// Stored labels that do not appear in widgets are dropped.
func (s *State) Reconcile(dim models.Dimension, widgets []WidgetState) bool {
	next := set.New[string](len(widgets))
	for _, w := range widgets {
		if w.Checked {
			next.Insert(w.Label)
		}
	}

	if s.get(dim).Equal(next) {
		return false
	}
	s.sets[dim] = next
	return true
}

// Clear empties the selection for dim and bumps the reset counter.
// It always reports a change.
func (s *State) Clear(dim models.Dimension) bool {
	s.get(dim)
	s.sets[dim] = set.New[string](0)
	s.counter++
	return true
}

// ClearAll empties every Selection Set with a single counter bump.
func (s *State) ClearAll() bool {
	for _, d := range models.Dimensions {
		s.sets[d] = set.New[string](0)
	}
	s.counter++
	return true
}

// Purge drops labels from dim that are not in candidates and reports whether
// anything was removed. The counter is left alone: purging is not a clear.
func (s *State) Purge(dim models.Dimension, candidates []string) bool {
	cur := s.get(dim)
	if cur.Size() == 0 {
		return false
	}

	allowed := set.From(candidates)
	removed := false
	for _, label := range cur.Slice() {
		if !allowed.Contains(label) {
			cur.Remove(label)
			removed = true
		}
	}
	return removed
}

// Selected returns the labels selected for dim, sorted.
func (s *State) Selected(dim models.Dimension) []string {
	out := s.get(dim).Slice()
	sort.Strings(out)
	return out
}

// Set returns a copy of the selection for dim.
func (s *State) Set(dim models.Dimension) *set.Set[string] {
	return s.get(dim).Copy()
}

// IsChecked reports whether label is selected for dim.
func (s *State) IsChecked(dim models.Dimension, label string) bool {
	return s.get(dim).Contains(label)
}

// Empty reports whether dim imposes no restriction.
func (s *State) Empty(dim models.Dimension) bool {
	return s.get(dim).Size() == 0
}

// Counter returns the reset counter.
func (s *State) Counter() uint64 {
	return s.counter
}

// WidgetKey is the composite identity of a checkbox: dimension, label and reset
// counter. Rendering reads checked state from State, so the key only names the element.
func (s *State) WidgetKey(dim models.Dimension, label string) string {
	return fmt.Sprintf("%s_%s_%d", dim, keyLabel(label), s.counter)
}

// keyLabel makes label safe for an HTML id. ASCII letters and digits pass
// through; every other byte, '-' included, becomes '-' plus two hex digits,
// so the result never contains '_' and distinct labels give distinct keys.
func keyLabel(label string) string {
	var b strings.Builder
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "-%02x", c)
		}
	}
	return b.String()
}

// Snapshot is a JSON-friendly copy of the state.
type Snapshot struct {
	Categories   []string `json:"categories"`
	AgeGroups    []string `json:"ageGroups"`
	Items        []string `json:"items"`
	ResetCounter uint64   `json:"resetCounter"`
}

// Snapshot copies the current selections.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Categories:   s.Selected(models.DimCategories),
		AgeGroups:    s.Selected(models.DimAgeGroups),
		Items:        s.Selected(models.DimItems),
		ResetCounter: s.counter,
	}
}
