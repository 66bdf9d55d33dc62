// Package shopstats answers analytics questions over a retail shop's
// customers, staff, orders and products.
//
// Usage:
//
//	import "github.com/geekcolab/shopstats/engine"
//
//	s, err := helpers.ParseShopYAML(data)
//	result, err := engine.Execute(engine.QuerySpec{
//	    Query: engine.QueryTopCustomers,
//	    Year:  2021,
//	    K:     3,
//	}, s, engine.WithCurrency("USD"))
//
// The query package holds the individual computations as plain functions
// over the shop graph; the engine dispatches named queries and shapes
// their answers into render-ready output (item list, table data, or text
// summary). Nothing mutates the shop graph, so a built shop can be queried
// from many goroutines at once.
package shopstats
