package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// Pipeline: group → aggregate → sort → limit.
// Grouping produces row subsets of the input view.
// ============================================================================

// GroupAndAggregate groups the view by up to two dimensions, aggregates
// measure in every group, sorts the top-level groups and keeps at most limit
// of them (limit <= 0 keeps all).
func GroupAndAggregate(
	view RecordView,
	groupBy []string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	var groups []Group
	switch len(groupBy) {
	case 0:
		groups = []Group{{Key: "all", Label: "Total", View: view}}
	case 1:
		groups = groupBySingle(view, groupBy[0])
	default:
		groups = groupBySingle(view, groupBy[0])
		for i := range groups {
			groups[i].SubGroups = groupBySingle(groups[i].View, groupBy[1])
		}
	}

	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
		for j := range groups[i].SubGroups {
			aggregateGroup(&groups[i].SubGroups[j], measure, aggregation)
		}
	}

	SortGroups(groups, sortBy)

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// groupBySingle groups rows by one dimension in first-seen key order.
func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		label := key
		if label == "" {
			label = "(none)"
		}
		groups = append(groups, Group{
			Key:   key,
			Label: label,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case "count":
		group.Value = float64(group.Count)
	case "avg":
		group.Value = AvgMeasure(group.View, measure)
	case "max":
		group.Value = MaxMeasure(group.View, measure)
	case "min":
		group.Value = MinMeasure(group.View, measure)
	default:
		group.Value = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure, 0 for an empty view.
func MaxMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	m := math.Inf(-1)
	for i := 0; i < view.Len(); i++ {
		m = math.Max(m, view.Measure(i, measure))
	}
	return m
}

// MinMeasure returns the smallest value of a named measure, 0 for an empty view.
func MinMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < view.Len(); i++ {
		m = math.Min(m, view.Measure(i, measure))
	}
	return m
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts groups by the given mode. Sorting is stable, so equal
// groups keep first-seen order; an unknown mode leaves the order untouched.
func SortGroups(groups []Group, sortBy string) {
	var compare func(a, b Group) int
	switch sortBy {
	case "value_desc":
		compare = func(a, b Group) int { return cmp.Compare(b.Value, a.Value) }
	case "value_asc":
		compare = func(a, b Group) int { return cmp.Compare(a.Value, b.Value) }
	case "chronological", "date_asc":
		compare = func(a, b Group) int { return cmp.Compare(parseSortableDate(a.Key), parseSortableDate(b.Key)) }
	case "reverse_chronological", "date_desc":
		compare = func(a, b Group) int { return cmp.Compare(parseSortableDate(b.Key), parseSortableDate(a.Key)) }
	case "label_asc", "alpha_asc":
		compare = func(a, b Group) int { return strings.Compare(strings.ToLower(a.Key), strings.ToLower(b.Key)) }
	case "label_desc":
		compare = func(a, b Group) int { return strings.Compare(strings.ToLower(b.Key), strings.ToLower(a.Key)) }
	default:
		return
	}
	slices.SortStableFunc(groups, compare)
}

// ParseMonthOrder converts "Jan-2026" to a sortable int (202601).
func ParseMonthOrder(monthStr string) int {
	t, err := time.Parse("Jan-2006", monthStr)
	if err != nil {
		return 0
	}
	return t.Year()*100 + int(t.Month())
}

// parseSortableDate orders month keys ("Mar-2021") and year keys ("2021")
// on one scale.
func parseSortableDate(key string) int {
	if v := ParseMonthOrder(key); v > 0 {
		return v
	}
	t, err := time.Parse("2006", key)
	if err == nil {
		return t.Year() * 100
	}
	return 0
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatCurrency formats an amount with an optional unit prefix and comma
// separators: FormatCurrency(1234.5, "USD") → "USD 1,234.50". Amounts of any
// float64 magnitude format exactly to the cent.
func FormatCurrency(amount float64, unit string) string {
	digits := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	whole, cents, _ := strings.Cut(digits, ".")

	s := groupThousands(whole) + "." + cents
	if unit != "" {
		s = unit + " " + s
	}
	if amount < 0 && strings.Trim(digits, "0.") != "" {
		s = "-" + s
	}
	return s
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + groupThousands(strconv.FormatUint(uint64(-(n+1))+1, 10))
	}
	return groupThousands(strconv.Itoa(n))
}

// groupThousands inserts commas into a string of decimal digits.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent formats a percentage with one decimal: "12.5%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// LabelForDimension returns a capitalized label for a dimension.
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	return strings.ToUpper(dimension[:1]) + dimension[1:]
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case "sum", "":
		return "Amount"
	case "count":
		return "Count"
	case "avg":
		return "Average"
	case "max":
		return "Maximum"
	case "min":
		return "Minimum"
	default:
		return "Value"
	}
}
