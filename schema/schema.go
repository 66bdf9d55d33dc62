package schema

import (
	"errors"
	"fmt"
	"slices"
)

// ============================================================================
// SCHEMA — Describes the order view that breakdowns group and aggregate
// ============================================================================
// The engine validates breakdown requests against a Config before running
// them; the CLI prints it so callers know which keys exist.
// ============================================================================

// Config describes the shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key            string `json:"key"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description,omitempty"`
	Groupable      bool   `json:"groupable"`
	Filterable     bool   `json:"filterable"`
	IsTemporal     bool   `json:"isTemporal,omitempty"`
	TemporalFormat string `json:"temporalFormat,omitempty"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string   `json:"key"`
	DisplayName        string   `json:"displayName"`
	Description        string   `json:"description,omitempty"`
	Unit               string   `json:"unit,omitempty"` // "currency", "percent", "units"
	Aggregations       []string `json:"aggregations,omitempty"`
	DefaultAggregation string   `json:"defaultAggregation,omitempty"`
}

// Validation errors.
var (
	ErrUnknownDimension   = errors.New("unknown dimension")
	ErrUnknownMeasure     = errors.New("unknown measure")
	ErrUnknownAggregation = errors.New("unsupported aggregation")
	ErrTooManyGroups      = errors.New("at most two groupBy dimensions are supported")
)

// DefaultDimension creates a groupable, filterable DimensionMeta.
func DefaultDimension(key, displayName string) DimensionMeta {
	return DimensionMeta{
		Key:         key,
		DisplayName: displayName,
		Groupable:   true,
		Filterable:  true,
	}
}

// DefaultMeasure creates a MeasureMeta with sensible defaults.
func DefaultMeasure(key, displayName, unit string) MeasureMeta {
	return MeasureMeta{
		Key:                key,
		DisplayName:        displayName,
		Unit:               unit,
		Aggregations:       []string{"sum", "avg", "min", "max", "count"},
		DefaultAggregation: "sum",
	}
}

// Orders describes the engine's order view.
func Orders() *Config {
	year := DefaultDimension("year", "Year")
	year.IsTemporal = true
	year.TemporalFormat = "2006"

	month := DefaultDimension("month", "Month")
	month.IsTemporal = true
	month.TemporalFormat = "Jan-2006"

	staff := DefaultDimension("staff", "Staff")
	staff.Description = "Staff member who processed the order"

	customers := DefaultDimension("customers", "Customers")
	customers.Description = "Customers on the order, comma separated"

	discount := DefaultMeasure("discount", "Discount", "percent")
	discount.Description = "Sum of product discount percentages on the payment"

	return &Config{
		Name:        "orders",
		Description: "One row per order processed by the shop's staff",
		Dimensions:  []DimensionMeta{year, month, staff, customers},
		Measures: []MeasureMeta{
			DefaultMeasure("subtotal", "Subtotal", "currency"),
			DefaultMeasure("tax", "Tax", "currency"),
			discount,
			DefaultMeasure("products", "Products", "units"),
		},
	}
}

// GetDefaultMeasure returns the first measure's key, or "subtotal" as fallback.
func (c Config) GetDefaultMeasure() string {
	if len(c.Measures) > 0 {
		return c.Measures[0].Key
	}
	return "subtotal"
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// Measure looks up a measure by key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// Validate checks that a breakdown request only names known keys.
// An empty aggregation means the measure's default.
func (c Config) Validate(groupBy []string, filterKeys []string, measure, aggregation string) error {
	if len(groupBy) > 2 {
		return ErrTooManyGroups
	}
	dims := c.DimensionKeys()
	for _, g := range groupBy {
		if !slices.Contains(dims, g) {
			return fmt.Errorf("%w: groupBy %q (have %v)", ErrUnknownDimension, g, dims)
		}
	}
	for _, f := range filterKeys {
		if !slices.Contains(dims, f) {
			return fmt.Errorf("%w: filter %q (have %v)", ErrUnknownDimension, f, dims)
		}
	}
	m, ok := c.Measure(measure)
	if !ok {
		return fmt.Errorf("%w: %q (have %v)", ErrUnknownMeasure, measure, c.MeasureKeys())
	}
	if aggregation != "" && !slices.Contains(m.Aggregations, aggregation) {
		return fmt.Errorf("%w: %q for measure %q", ErrUnknownAggregation, aggregation, measure)
	}
	return nil
}
