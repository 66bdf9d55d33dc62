package engine

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/geekcolab/shopstats/query"
	"github.com/geekcolab/shopstats/shop"
)

// ============================================================================
// ORDER VIEW — one row per order processed by the shop's staff
// ============================================================================
// Dimensions: year ("2021"), month ("Mar-2021"), staff, customers
// Measures:   subtotal, tax, discount (total percent, 0 when absent), products
// ============================================================================

// OrderLine is an order with its names resolved through the shop directory.
type OrderLine struct {
	Order     *shop.Order
	Staff     string
	Customers string
}

// OrderLines flattens the shop's staff orders into lines, one per distinct
// order with a payment.
func OrderLines(s *shop.Shop) []OrderLine {
	lines := make([]OrderLine, 0)
	if s == nil {
		return lines
	}
	dir := s.Directory()
	seen := make(map[uuid.UUID]bool)
	for _, st := range s.Staff {
		if st == nil {
			continue
		}
		staffName, _ := dir.DisplayName(st.PersonID)
		for _, o := range st.Orders {
			if o == nil || o.Payment == nil || seen[o.ID] {
				continue
			}
			seen[o.ID] = true
			lines = append(lines, OrderLine{
				Order:     o,
				Staff:     staffName,
				Customers: customerNames(dir, o),
			})
		}
	}
	return lines
}

func customerNames(dir *shop.Directory, o *shop.Order) string {
	names := make([]string, 0, len(o.CustomerIDs))
	for _, id := range o.CustomerIDs {
		c, ok := dir.Customer(id)
		if !ok {
			continue
		}
		if name, ok := dir.DisplayName(c.PersonID); ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

var orderAdapter = NewAdapter[OrderLine]().
	Dimension("year", func(l OrderLine) string { return strconv.Itoa(l.Order.Year()) }).
	Dimension("month", func(l OrderLine) string { return l.Order.PlacedAt.Format("Jan-2006") }).
	Dimension("staff", func(l OrderLine) string { return l.Staff }).
	Dimension("customers", func(l OrderLine) string { return l.Customers }).
	Measure("subtotal", func(l OrderLine) float64 { return l.Order.Payment.SubTotal }).
	Measure("tax", func(l OrderLine) float64 { return l.Order.Payment.Tax }).
	Measure("discount", func(l OrderLine) float64 {
		pct, _ := query.TotalDiscount(l.Order.Payment)
		return pct
	}).
	Measure("products", func(l OrderLine) float64 { return float64(len(l.Order.Payment.Products)) })

// NewOrderView binds the shop's order lines as a RecordView.
func NewOrderView(s *shop.Shop) RecordView {
	return orderAdapter.Bind(OrderLines(s))
}
