package engine

// ============================================================================
// SHOPSTATS ENGINE TYPES
// ============================================================================
// QuerySpec names a shop query and its parameters; Execute turns it into a
// render-ready Result. The engine never mutates the shop graph.
//
// Dependency: query (pure functions), schema (breakdown validation).
// ============================================================================

// Query names understood by Execute.
const (
	QueryTopCustomers      = "top-customers"
	QueryMostTaxedProducts = "most-taxed-products"
	QueryTopTaxCustomers   = "top-tax-customers"
	QueryProductNames      = "product-names"
	QueryProductsByTag     = "products-by-tag"
	QueryMinLimitProducts  = "min-limit-products"
	QueryLimitConflicts    = "limit-conflicts"
	QueryBreakdown         = "breakdown"
)

// ============================================================================
// QUERYSPEC — what the caller wants computed
// ============================================================================

// QuerySpec defines what the engine should compute.
type QuerySpec struct {
	Query       string   `json:"query"`                 // one of the Query* names
	Year        int      `json:"year,omitempty"`        // calendar year filter
	MinDiscount *float64 `json:"minDiscount,omitempty"` // percent, top-customers only; nil → default
	K           int      `json:"k,omitempty"`           // 0 → default limit, < 0 → empty
	Tag         string   `json:"tag,omitempty"`         // products-by-tag
	Filters     Filters  `json:"filters"`               // breakdown only
	GroupBy     []string `json:"groupBy,omitempty"`     // breakdown: ["year"], ["staff", "month"]
	Measure     string   `json:"measure,omitempty"`     // breakdown: "subtotal", "tax", "discount"
	Aggregation string   `json:"aggregation,omitempty"` // "sum", "count", "avg", "max", "min"
	SortBy      string   `json:"sortBy,omitempty"`      // "value_desc", "date_asc", "alpha_asc", ...
	Title       string   `json:"title,omitempty"`
	Reply       string   `json:"reply,omitempty"` // template: "{count} customers in {year}: {items}"
}

// Percent returns pct as a QuerySpec.MinDiscount value.
func Percent(pct float64) *float64 { return &pct }

// Filters define which order lines a breakdown includes.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	vals, ok := f.Dimensions[dimension]
	return ok && len(vals) > 0
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// RESULT — render-ready output
// ============================================================================

// Result is the engine's render-ready output.
type Result struct {
	Success bool   `json:"success"`
	Type    string `json:"type"` // "list", "table", "text"
	Query   string `json:"query"`
	Title   string `json:"title,omitempty"`
	Reply   string `json:"reply"`

	// Items holds the answer of list-shaped queries (names).
	Items []string `json:"items"`

	TableData *TableData `json:"tableData,omitempty"`
	Data      *TextData  `json:"data,omitempty"`

	DisplayUnit string   `json:"displayUnit,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ============================================================================
// GROUP — intermediate breakdown result
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Value     float64    `json:"value"`
	Count     int        `json:"count"`
	SubGroups []Group    `json:"subGroups,omitempty"`
	View      RecordView `json:"-"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a single-value answer.
type TextData struct {
	Value    string  `json:"value"`
	RawValue float64 `json:"rawValue"`
	Unit     string  `json:"unit"`
	Period   string  `json:"period"`
	Count    int     `json:"count"`
}

// QueryInfo describes one supported query.
type QueryInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}
