package engine

// ============================================================================
// RECORD VIEW — read access to rows the engine does not own
// ============================================================================
// Breakdowns never copy shop data. An Adapter declares how to read a typed
// row (OrderLine for the order view); Bind wraps a slice of rows; filtering
// and grouping narrow a view to a row subset by index.
// ============================================================================

// RecordView provides indexed access to a dataset.
// Dimension and Measure run in the inner loops of every breakdown.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// ROW SUBSETS
// ============================================================================

// rowSubset selects rows of a base view by index. Subsets of subsets are
// flattened onto the base, so lookups never chain.
type rowSubset struct {
	base RecordView
	rows []int
}

func newSubView(parent RecordView, rows []int) RecordView {
	if sub, ok := parent.(*rowSubset); ok {
		mapped := make([]int, len(rows))
		for i, r := range rows {
			mapped[i] = sub.rows[r]
		}
		return &rowSubset{base: sub.base, rows: mapped}
	}
	return &rowSubset{base: parent, rows: rows}
}

func (v *rowSubset) Len() int { return len(v.rows) }

func (v *rowSubset) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.rows) {
		return ""
	}
	return v.base.Dimension(v.rows[i], key)
}

func (v *rowSubset) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.rows) {
		return 0
	}
	return v.base.Measure(v.rows[i], key)
}

func (v *rowSubset) DimensionKeys() []string { return v.base.DimensionKeys() }
func (v *rowSubset) MeasureKeys() []string   { return v.base.MeasureKeys() }

// ============================================================================
// ADAPTER — typed rows
// ============================================================================
//
//	var lines = engine.NewAdapter[OrderLine]().
//	    Dimension("staff", func(l OrderLine) string { return l.Staff }).
//	    Measure("tax", func(l OrderLine) float64 { return l.Order.Payment.Tax })
//
//	view := lines.Bind(OrderLines(s))
//
// ============================================================================

type accessor[T, V any] struct {
	key string
	get func(T) V
}

// Adapter declares the dimensions and measures of row type T, in
// registration order. Declare it once; bind it to any number of slices.
type Adapter[T any] struct {
	dims    []accessor[T, string]
	meas    []accessor[T, float64]
	dimAt   map[string]int
	measAt  map[string]int
	dimKeys []string
	mesKeys []string
}

// NewAdapter creates an empty adapter for row type T.
func NewAdapter[T any]() *Adapter[T] {
	return &Adapter[T]{
		dimAt:  make(map[string]int),
		measAt: make(map[string]int),
	}
}

// Dimension registers (or replaces) a string accessor.
func (a *Adapter[T]) Dimension(key string, fn func(T) string) *Adapter[T] {
	if i, ok := a.dimAt[key]; ok {
		a.dims[i].get = fn
		return a
	}
	a.dimAt[key] = len(a.dims)
	a.dims = append(a.dims, accessor[T, string]{key: key, get: fn})
	a.dimKeys = append(a.dimKeys, key)
	return a
}

// Measure registers (or replaces) a numeric accessor.
func (a *Adapter[T]) Measure(key string, fn func(T) float64) *Adapter[T] {
	if i, ok := a.measAt[key]; ok {
		a.meas[i].get = fn
		return a
	}
	a.measAt[key] = len(a.meas)
	a.meas = append(a.meas, accessor[T, float64]{key: key, get: fn})
	a.mesKeys = append(a.mesKeys, key)
	return a
}

// Bind wraps rows as a RecordView. The slice is referenced, not copied.
func (a *Adapter[T]) Bind(rows []T) RecordView {
	return &boundView[T]{adapter: a, rows: rows}
}

type boundView[T any] struct {
	adapter *Adapter[T]
	rows    []T
}

func (v *boundView[T]) Len() int { return len(v.rows) }

func (v *boundView[T]) Dimension(i int, key string) string {
	j, ok := v.adapter.dimAt[key]
	if !ok || i < 0 || i >= len(v.rows) {
		return ""
	}
	return v.adapter.dims[j].get(v.rows[i])
}

func (v *boundView[T]) Measure(i int, key string) float64 {
	j, ok := v.adapter.measAt[key]
	if !ok || i < 0 || i >= len(v.rows) {
		return 0
	}
	return v.adapter.meas[j].get(v.rows[i])
}

func (v *boundView[T]) DimensionKeys() []string { return v.adapter.dimKeys }
func (v *boundView[T]) MeasureKeys() []string   { return v.adapter.mesKeys }
