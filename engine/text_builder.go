package engine

import (
	"cmp"
	"fmt"
	"slices"
)

// ============================================================================
// TEXT BUILDER — single-value answers for ungrouped breakdowns
// ============================================================================

// BuildText aggregates measure over the whole view.
func BuildText(spec QuerySpec, view RecordView, measure string, unit string) *TextData {
	if view.Len() == 0 {
		return &TextData{
			Value:  "0",
			Unit:   unit,
			Period: DerivePeriod(view),
		}
	}

	var value float64
	switch spec.Aggregation {
	case "count":
		value = float64(view.Len())
	case "avg":
		value = AvgMeasure(view, measure)
	case "max":
		value = MaxMeasure(view, measure)
	case "min":
		value = MinMeasure(view, measure)
	default:
		value = SumMeasure(view, measure)
	}

	formatted := formatMeasure(value, measure, unit)
	if spec.Aggregation == "count" {
		formatted = FormatInt(int(value))
	}

	return &TextData{
		Value:    formatted,
		RawValue: value,
		Unit:     unit,
		Period:   DerivePeriod(view),
		Count:    view.Len(),
	}
}

// DerivePeriod builds a human-readable period from the view's "month"
// dimension: "Mar-2021", "Jan-2021 – Apr-2021", or "No data".
func DerivePeriod(view RecordView) string {
	if view.Len() == 0 {
		return "No data"
	}

	months := make([]string, 0)
	seen := make(map[string]bool)
	for i := 0; i < view.Len(); i++ {
		m := view.Dimension(i, "month")
		if m != "" && !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}

	switch len(months) {
	case 0:
		return "All time"
	case 1:
		return months[0]
	}

	byDate := func(a, b string) int { return cmp.Compare(ParseMonthOrder(a), ParseMonthOrder(b)) }
	earliest := slices.MinFunc(months, byDate)
	latest := slices.MaxFunc(months, byDate)
	return fmt.Sprintf("%s – %s", earliest, latest)
}
