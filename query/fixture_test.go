package query

import (
	"time"

	"github.com/geekcolab/shopstats/shop"
)

func at(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
}

// retailFixture is a small shop used across tests.
//
//	2021 orders (tax desc): o3 tax 30 (cara; bread, hammer)
//	                        o1 tax 20 (ann; apple, bread)
//	                        o4 tax 10 (ann, bo; apple)
//	                        o2 tax  5 (bo; nail)
//	2020 order:             o5 tax 99 (cara; saw)
type retailFixture struct {
	shop   *shop.Shop
	people []*shop.Person

	ann, bo, cara, dan *shop.Person
	annC, boC, caraC   *shop.Customer
	clerk, manager     *shop.Staff

	apple, bread, hammer, nail, saw *shop.Product
}

func newRetailFixture() *retailFixture {
	b := shop.NewBuilder()
	f := &retailFixture{}

	f.ann = b.AddPerson("Ann", "Lee")
	f.bo = b.AddPerson("Bo", "Kim")
	f.cara = b.AddPerson("Cara", "Diaz")
	f.dan = b.AddPerson("Dan", "Ode")

	f.annC = b.AddCustomer(f.ann)
	f.boC = b.AddCustomer(f.bo)
	f.clerk = b.AddStaff(f.bo)
	f.caraC = b.AddCustomer(f.cara)
	f.manager = b.AddStaff(f.dan)

	f.apple = b.AddProduct("Apple", "food", []float64{10}, shop.Limit{Type: shop.LimitMin, Value: 5})
	f.bread = b.AddProduct("Bread", "food", []float64{5})
	f.hammer = b.AddProduct("Hammer", "tools", nil, shop.Limit{Type: shop.LimitMax, Value: 100})
	f.nail = b.AddProduct("Nail", "tools", nil, shop.Limit{Type: shop.LimitMin, Value: 50}, shop.Limit{Type: shop.LimitMax, Value: 900})
	f.saw = b.AddProduct("Saw", "tools", []float64{20})

	b.AddOrder(f.clerk, []*shop.Customer{f.annC}, at(2021, time.January), 200, 20, f.apple, f.bread)
	b.AddOrder(f.clerk, []*shop.Customer{f.boC}, at(2021, time.February), 40, 5, f.nail)
	b.AddOrder(f.manager, []*shop.Customer{f.caraC}, at(2021, time.March), 300, 30, f.bread, f.hammer)
	b.AddOrder(f.manager, []*shop.Customer{f.annC, f.boC}, at(2021, time.April), 80, 10, f.apple)
	b.AddOrder(f.manager, []*shop.Customer{f.caraC}, at(2020, time.May), 999, 99, f.saw)

	f.shop = b.Build()
	f.people = b.People()
	return f
}
