package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-dashboard/models"
)

func widgets(labels []string, checked ...string) []WidgetState {
	on := make(map[string]bool, len(checked))
	for _, c := range checked {
		on[c] = true
	}
	out := make([]WidgetState, 0, len(labels))
	for _, l := range labels {
		out = append(out, WidgetState{Label: l, Checked: on[l]})
	}
	return out
}

var categories = []string{"Clothing", "Footwear", "Outerwear", "Accessories"}

func TestNewStateIsEmpty(t *testing.T) {
	s := NewState()
	for _, d := range models.Dimensions {
		assert.True(t, s.Empty(d), "dimension %s should start empty", d)
	}
	assert.Zero(t, s.Counter())
}

func TestReconcileIsIdempotent(t *testing.T) {
	for _, dim := range models.Dimensions {
		t.Run(string(dim), func(t *testing.T) {
			s := NewState()
			w := widgets(categories, "Footwear", "Outerwear")

			assert.True(t, s.Reconcile(dim, w), "first call should signal")
			assert.False(t, s.Reconcile(dim, w), "second call must not signal")
			assert.Equal(t, []string{"Footwear", "Outerwear"}, s.Selected(dim))
		})
	}
}

func TestReconcileOrderIndependent(t *testing.T) {
	s := NewState()
	require.True(t, s.Reconcile(models.DimCategories, widgets(categories, "Outerwear", "Clothing")))

	reversed := []WidgetState{
		{Label: "Outerwear", Checked: true},
		{Label: "Accessories"},
		{Label: "Clothing", Checked: true},
	}
	assert.False(t, s.Reconcile(models.DimCategories, reversed))
}

func TestReconcileNoSignalWhenNothingChecked(t *testing.T) {
	s := NewState()
	assert.False(t, s.Reconcile(models.DimItems, widgets(categories)))
	assert.False(t, s.Reconcile(models.DimItems, nil))
}

func TestReconcileNetToggleWithinBatch(t *testing.T) {
	s := NewState()
	require.True(t, s.Reconcile(models.DimCategories, widgets(categories, "Clothing")))

	// Footwear checked then unchecked before the batch is reported: net state is
	// the original one.
	assert.False(t, s.Reconcile(models.DimCategories, widgets(categories, "Clothing")))
	assert.NotContains(t, s.Selected(models.DimCategories), "Footwear")
}

func TestReconcileDropsLabelsMissingFromWidgets(t *testing.T) {
	s := NewState()
	require.True(t, s.Reconcile(models.DimItems, widgets([]string{"Blouse", "Jeans"}, "Blouse", "Jeans")))

	// The candidate list shrank; Jeans is no longer rendered.
	assert.True(t, s.Reconcile(models.DimItems, widgets([]string{"Blouse", "Hat"}, "Blouse")))
	assert.Equal(t, []string{"Blouse"}, s.Selected(models.DimItems))
}

func TestReconcileLeavesOtherDimensionsAlone(t *testing.T) {
	s := NewState()
	s.Reconcile(models.DimAgeGroups, widgets([]string{"18-25", "26-35"}, "18-25"))
	s.Reconcile(models.DimCategories, widgets(categories, "Footwear"))

	assert.Equal(t, []string{"18-25"}, s.Selected(models.DimAgeGroups))
	assert.True(t, s.Empty(models.DimItems))
}

func TestClearAlwaysEmptiesAndBumps(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*State)
	}{
		{"already empty", func(*State) {}},
		{"with selection", func(s *State) { s.Reconcile(models.DimItems, widgets([]string{"Hat"}, "Hat")) }},
		{"after previous clear", func(s *State) { s.Clear(models.DimItems) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			tt.setup(s)
			before := s.Counter()

			assert.True(t, s.Clear(models.DimItems))
			assert.True(t, s.Empty(models.DimItems))
			assert.Greater(t, s.Counter(), before)
		})
	}
}

func TestClearTwiceBumpsByTwo(t *testing.T) {
	s := NewState()
	s.Reconcile(models.DimItems, widgets([]string{"Hat", "Scarf"}, "Scarf"))
	before := s.Counter()

	s.Clear(models.DimItems)
	s.Clear(models.DimItems)

	assert.Equal(t, before+2, s.Counter())
	assert.True(t, s.Empty(models.DimItems))
}

func TestClearChangesWidgetKeys(t *testing.T) {
	s := NewState()
	before := s.WidgetKey(models.DimCategories, "Footwear")
	s.Clear(models.DimCategories)
	after := s.WidgetKey(models.DimCategories, "Footwear")

	assert.NotEqual(t, before, after)
	assert.Equal(t, "categories_Footwear_1", after)
}

func TestClearAll(t *testing.T) {
	s := NewState()
	s.Reconcile(models.DimCategories, widgets(categories, "Footwear"))
	s.Reconcile(models.DimAgeGroups, widgets([]string{"65+"}, "65+"))

	s.ClearAll()
	for _, d := range models.Dimensions {
		assert.True(t, s.Empty(d))
	}
	assert.Equal(t, uint64(1), s.Counter())
}

func TestPurge(t *testing.T) {
	s := NewState()
	s.Reconcile(models.DimItems, widgets([]string{"Blouse", "Jeans", "Hat"}, "Blouse", "Jeans"))

	assert.False(t, s.Purge(models.DimItems, []string{"Blouse", "Jeans", "Socks"}))
	assert.True(t, s.Purge(models.DimItems, []string{"Blouse", "Socks"}))
	assert.Equal(t, []string{"Blouse"}, s.Selected(models.DimItems))
	assert.Zero(t, s.Counter(), "purging is not a clear")
}

func TestWidgetKeyEscapesLabels(t *testing.T) {
	s := NewState()
	cases := map[string]string{
		"Footwear":      "items_Footwear_0",
		"T-shirt":       "items_T-2dshirt_0",
		"Free Shipping": "items_Free-20Shipping_0",
		"a_b":           "items_a-5fb_0",
		"65+":           "items_65-2b_0",
		"Café":          "items_Caf-c3-a9_0",
	}
	for label, want := range cases {
		assert.Equal(t, want, s.WidgetKey(models.DimItems, label), label)
	}
	assert.NotEqual(t, s.WidgetKey(models.DimItems, "a b"), s.WidgetKey(models.DimItems, "a-20b"))
}

func TestSnapshotAndCopyAreDetached(t *testing.T) {
	s := NewState()
	s.Reconcile(models.DimCategories, widgets(categories, "Footwear"))

	cp := s.Set(models.DimCategories)
	cp.Insert("Clothing")
	assert.Equal(t, []string{"Footwear"}, s.Selected(models.DimCategories))

	snap := s.Snapshot()
	assert.Equal(t, []string{"Footwear"}, snap.Categories)
	assert.Empty(t, snap.Items)
}

func TestUnknownDimensionPanics(t *testing.T) {
	s := NewState()
	assert.Panics(t, func() { s.Clear(models.Dimension("colors")) })
}
