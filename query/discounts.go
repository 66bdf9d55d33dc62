package query

import "github.com/geekcolab/shopstats/shop"

// TotalDiscount sums the discount percentages of every product in the
// payment. ok is false when the payment carries no discount records at all;
// a single zero-percent record yields (0, true).
func TotalDiscount(p *shop.Payment) (total float64, ok bool) {
	if p == nil {
		return 0, false
	}
	for _, product := range p.Products {
		if product == nil {
			continue
		}
		for _, d := range product.Discounts {
			total += d.Percent
			ok = true
		}
	}
	return total, ok
}
