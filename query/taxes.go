package query

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/geekcolab/shopstats/shop"
)

// PaymentsByTax returns the payments of every order processed in year,
// highest tax first. Equal taxes keep staff order, then order order.
// An order reachable from several staff members is counted once.
func PaymentsByTax(s *shop.Shop, year int) []*shop.Payment {
	payments := make([]*shop.Payment, 0)
	if s == nil {
		return payments
	}
	seen := make(map[uuid.UUID]bool)
	for _, st := range s.Staff {
		if st == nil {
			continue
		}
		for _, o := range st.Orders {
			if o == nil || o.Payment == nil || o.Year() != year || seen[o.ID] {
				continue
			}
			seen[o.ID] = true
			payments = append(payments, o.Payment)
		}
	}

	slices.SortStableFunc(payments, func(a, b *shop.Payment) int {
		return cmp.Compare(b.Tax, a.Tax)
	})
	return payments
}

// TopKMostTaxedProducts returns the names of the first k distinct products
// found when walking year's payments from highest to lowest tax.
func TopKMostTaxedProducts(s *shop.Shop, year int, k int) []string {
	names := make([]string, 0)
	if k <= 0 {
		return names
	}
	seen := make(map[uuid.UUID]bool)
	for _, p := range PaymentsByTax(s, year) {
		for _, product := range p.Products {
			if product == nil || seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			names = append(names, product.Name)
			if len(names) == k {
				return names
			}
		}
	}
	return names
}

// TopTaxPayingCustomers takes year's k highest-tax payments and returns the
// distinct customers behind them, in payment order. The result may hold
// fewer than k names. References that cannot be resolved are skipped.
func TopTaxPayingCustomers(s *shop.Shop, year int, k int) []string {
	names := make([]string, 0)
	dir := s.Directory()
	seen := make(map[uuid.UUID]bool)
	for _, p := range Limit(PaymentsByTax(s, year), k) {
		order, ok := dir.Order(p.OrderID)
		if !ok {
			continue
		}
		for _, id := range order.CustomerIDs {
			if seen[id] {
				continue
			}
			c, ok := dir.Customer(id)
			if !ok {
				continue
			}
			name, ok := dir.DisplayName(c.PersonID)
			if !ok {
				continue
			}
			seen[id] = true
			names = append(names, name)
		}
	}
	return names
}
