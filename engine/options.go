package engine

import "github.com/geekcolab/shopstats/schema"

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Currency           string         // display unit for money values
	DefaultLimit       int            // used when QuerySpec.K is 0
	DefaultMinDiscount float64        // used when QuerySpec.MinDiscount is nil
	Schema             *schema.Config // breakdown dimensions and measures
}

// WithCurrency sets the unit prefixed to formatted money values.
func WithCurrency(unit string) Option {
	return func(c *config) {
		c.Currency = unit
	}
}

// WithDefaultLimit sets how many results a query returns when QuerySpec.K is 0.
func WithDefaultLimit(k int) Option {
	return func(c *config) {
		c.DefaultLimit = k
	}
}

// WithDefaultMinDiscount sets the discount threshold used when
// QuerySpec.MinDiscount is nil. An explicit 0 still means 0%.
func WithDefaultMinDiscount(pct float64) Option {
	return func(c *config) {
		c.DefaultMinDiscount = pct
	}
}

// WithSchema replaces the built-in order schema used to validate breakdowns.
func WithSchema(sch *schema.Config) Option {
	return func(c *config) {
		c.Schema = sch
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		DefaultLimit: 10,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Schema == nil {
		cfg.Schema = schema.Orders()
	}
	return cfg
}
