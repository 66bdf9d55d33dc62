package query

import "github.com/geekcolab/shopstats/shop"

// LimitConflict reports a product carrying several limits of one type.
// MinLimit still answers with the first one; the conflict exists so callers
// can surface the ambiguity.
type LimitConflict struct {
	Product *shop.Product `json:"-"`
	Name    string        `json:"product"`
	Type    string        `json:"type"`
	Limits  []shop.Limit  `json:"limits"`
}

// LimitConflicts lists, per product and in product then first-seen type
// order, every limit type that appears more than once.
func LimitConflicts(products []*shop.Product) []LimitConflict {
	out := make([]LimitConflict, 0)
	for _, p := range products {
		if p == nil || len(p.Limits) < 2 {
			continue
		}
		byType := make(map[string][]shop.Limit)
		var order []string
		for _, l := range p.Limits {
			if _, ok := byType[l.Type]; !ok {
				order = append(order, l.Type)
			}
			byType[l.Type] = append(byType[l.Type], l)
		}
		for _, typ := range order {
			if limits := byType[typ]; len(limits) > 1 {
				out = append(out, LimitConflict{Product: p, Name: p.Name, Type: typ, Limits: limits})
			}
		}
	}
	return out
}
