package query_test

import (
	"fmt"
	"time"

	"github.com/geekcolab/shopstats/query"
	"github.com/geekcolab/shopstats/shop"
)

func ExampleTopKCustomers() {
	b := shop.NewBuilder()
	sale := b.AddProduct("Tea", "food", []float64{15})
	full := b.AddProduct("Kettle", "tools", nil)

	ann := b.AddCustomer(b.AddPerson("Ann", "Lee"))
	bo := b.AddCustomer(b.AddPerson("Bo", "Kim"))
	day := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	b.AddOrder(nil, []*shop.Customer{ann}, day, 100, 5, sale)
	b.AddOrder(nil, []*shop.Customer{bo}, day, 900, 50, full)
	b.AddOrder(nil, []*shop.Customer{bo}, day, 40, 2, sale)

	fmt.Println(query.TopKCustomers(b.People(), 2021, 10, 5))

	spend, ok := query.SpendWithMinDiscount(bo, 2021, 10)
	fmt.Println(spend, ok)

	_, ok = query.SpendWithMinDiscount(bo, 2020, 10)
	fmt.Println(ok)

	// Output:
	// [Ann Lee Bo Kim]
	// 40 true
	// false
}

func ExampleMinLimit() {
	p := &shop.Product{Name: "Flour", Limits: []shop.Limit{{Type: shop.LimitMin, Value: 5}, {Type: shop.LimitMax, Value: 100}}}

	l, ok := query.MinLimit(p)
	fmt.Println(l.Value, ok)

	// Output:
	// 5 true
}
