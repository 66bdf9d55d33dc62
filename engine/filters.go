package engine

import (
	"strconv"
	"strings"
)

// ============================================================================
// FILTERS — dimension-based filtering via RecordView
// ============================================================================
// Single pass over the view: every dimension constraint is checked per row.
// Returns a row subset of the view; no row data is copied.
// ============================================================================

// ApplyFilters returns a view of rows matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined and
// compared case-insensitively. Empty filter = no restriction.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toLowerSet(allowed)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matchesAll(view, i, sets) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

func matchesAll(view RecordView, i int, sets map[string]map[string]bool) bool {
	for dim, set := range sets {
		if !set[strings.ToLower(view.Dimension(i, dim))] {
			return false
		}
	}
	return true
}

// breakdownFilters merges QuerySpec.Year into the explicit filters.
// An explicit "year" filter wins over QuerySpec.Year.
func breakdownFilters(spec QuerySpec) Filters {
	merged := Filters{Dimensions: make(map[string][]string, len(spec.Filters.Dimensions)+1)}
	for dim, vals := range spec.Filters.Dimensions {
		merged.Dimensions[dim] = vals
	}
	if spec.Year != 0 && !merged.HasFilter("year") {
		merged.Dimensions["year"] = []string{strconv.Itoa(spec.Year)}
	}
	return merged
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
