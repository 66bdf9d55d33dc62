package query

import "github.com/geekcolab/shopstats/shop"

// ProductNames lists every product name in shop order.
func ProductNames(s *shop.Shop) []string {
	if s == nil {
		return []string{}
	}
	names := make([]string, 0, len(s.Products))
	for _, p := range s.Products {
		if p != nil {
			names = append(names, p.Name)
		}
	}
	return names
}

// ProductsByTag returns products whose tag name equals tag exactly.
func ProductsByTag(s *shop.Shop, tag string) []*shop.Product {
	out := make([]*shop.Product, 0)
	if s == nil {
		return out
	}
	for _, p := range s.Products {
		if p != nil && p.Tag.Name == tag {
			out = append(out, p)
		}
	}
	return out
}

// MinLimit returns the first "min" limit in the product's limit order.
func MinLimit(p *shop.Product) (shop.Limit, bool) {
	if p == nil {
		return shop.Limit{}, false
	}
	for _, l := range p.Limits {
		if l.Type == shop.LimitMin {
			return l, true
		}
	}
	return shop.Limit{}, false
}

// ProductsWithMinLimit keeps the products that carry a "min" limit.
func ProductsWithMinLimit(products []*shop.Product) []*shop.Product {
	out := make([]*shop.Product, 0, len(products))
	for _, p := range products {
		if _, ok := MinLimit(p); ok {
			out = append(out, p)
		}
	}
	return out
}
