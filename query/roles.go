package query

import "github.com/geekcolab/shopstats/shop"

// PartitionCustomers returns every customer role in people, in person order
// then role order.
func PartitionCustomers(people []*shop.Person) []*shop.Customer {
	out := make([]*shop.Customer, 0)
	for _, p := range people {
		if p == nil {
			continue
		}
		for _, r := range p.Roles {
			if r.Kind == shop.RoleCustomer && r.Customer != nil {
				out = append(out, r.Customer)
			}
		}
	}
	return out
}

// PartitionStaff returns every staff role in people, in person order then
// role order.
func PartitionStaff(people []*shop.Person) []*shop.Staff {
	out := make([]*shop.Staff, 0)
	for _, p := range people {
		if p == nil {
			continue
		}
		for _, r := range p.Roles {
			if r.Kind == shop.RoleStaff && r.Staff != nil {
				out = append(out, r.Staff)
			}
		}
	}
	return out
}
