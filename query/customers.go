package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/geekcolab/shopstats/shop"
)

// SpendWithMinDiscount sums the subtotals of the customer's orders placed in
// year whose payment carries a total discount of at least minDiscountPct.
// Orders without any discount record never qualify. ok is false when no
// order qualifies.
func SpendWithMinDiscount(c *shop.Customer, year int, minDiscountPct float64) (spend float64, ok bool) {
	if c == nil {
		return 0, false
	}
	for _, o := range c.Orders {
		if o == nil || o.Payment == nil || o.Year() != year {
			continue
		}
		discount, has := TotalDiscount(o.Payment)
		if !has || discount < minDiscountPct {
			continue
		}
		spend += o.Payment.SubTotal
		ok = true
	}
	return spend, ok
}

// CustomerSpend is a customer's qualifying spend with the owner's name.
type CustomerSpend struct {
	Customer *shop.Customer `json:"-"`
	Name     string         `json:"name"`
	Spend    float64        `json:"spend"`
}

// RankCustomers returns every customer in people with a qualifying spend,
// highest spend first. Ties are ordered by name, then by encounter order.
func RankCustomers(people []*shop.Person, year int, minDiscountPct float64) []CustomerSpend {
	ranked := make([]CustomerSpend, 0)
	for _, p := range people {
		if p == nil {
			continue
		}
		// The owner of a role is the person holding it.
		for _, r := range p.Roles {
			if r.Kind != shop.RoleCustomer || r.Customer == nil {
				continue
			}
			spend, ok := SpendWithMinDiscount(r.Customer, year, minDiscountPct)
			if !ok {
				continue
			}
			ranked = append(ranked, CustomerSpend{
				Customer: r.Customer,
				Name:     p.DisplayName(),
				Spend:    spend,
			})
		}
	}

	slices.SortStableFunc(ranked, func(a, b CustomerSpend) int {
		if c := cmp.Compare(b.Spend, a.Spend); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ranked
}

// TopKCustomers returns the display names of the k customers who spent the
// most in year on orders discounted by at least minDiscountPct.
func TopKCustomers(people []*shop.Person, year int, minDiscountPct float64, k int) []string {
	ranked := Limit(RankCustomers(people, year, minDiscountPct), k)
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		names = append(names, r.Name)
	}
	return names
}
