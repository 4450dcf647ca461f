package engine

import (
	"github.com/hashicorp/go-set/v2"

	"shopping-dashboard/models"
	"shopping-dashboard/selection"
)

// ComputeDerivedView applies, in order, the sidebar membership filters, the
// sidebar inclusive range filters, and every non-empty Selection Set.
// An empty set of any kind imposes no restriction. The source is never modified.
func ComputeDerivedView(source View, sidebar models.SidebarFilters, sel *selection.State) View {
	return applySelections(ApplySidebar(source, sidebar), sel, true)
}

// UpstreamItemView is the Derived View without the item selection. The item
// candidate list is computed from it so a selection cannot narrow its own choices.
func UpstreamItemView(source View, sidebar models.SidebarFilters, sel *selection.State) View {
	return applySelections(ApplySidebar(source, sidebar), sel, false)
}

// ApplySidebar narrows source by the sidebar filters only.
func ApplySidebar(source View, f models.SidebarFilters) View {
	if f.IsEmpty() {
		return source
	}

	genders := set.From(f.Genders)
	seasons := set.From(f.Seasons)
	categories := set.From(f.Categories)

	return Where(source, func(t *models.Transaction) bool {
		if genders.Size() > 0 && !genders.Contains(t.Gender) {
			return false
		}
		if seasons.Size() > 0 && !seasons.Contains(t.Season) {
			return false
		}
		if categories.Size() > 0 && !categories.Contains(t.Category) {
			return false
		}
		return f.Age.Contains(t.Age) && f.PurchaseAmount.Contains(t.PurchaseAmount)
	})
}

func applySelections(view View, sel *selection.State, withItems bool) View {
	if sel == nil {
		return view
	}

	categories := sel.Set(models.DimCategories)
	ageGroups := sel.Set(models.DimAgeGroups)
	items := sel.Set(models.DimItems)
	if !withItems {
		items = set.New[string](0)
	}

	if categories.Size() == 0 && ageGroups.Size() == 0 && items.Size() == 0 {
		return view
	}

	return Where(view, func(t *models.Transaction) bool {
		if categories.Size() > 0 && !categories.Contains(t.Category) {
			return false
		}
		if ageGroups.Size() > 0 {
			group, ok := AgeGroup(t.Age)
			if !ok || !ageGroups.Contains(group) {
				return false
			}
		}
		if items.Size() > 0 && !items.Contains(t.Item) {
			return false
		}
		return true
	})
}
