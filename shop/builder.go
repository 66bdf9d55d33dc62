package shop

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// BUILDER — wires a shop graph with IDs and back-references
// ============================================================================
//
// Usage:
//
//	b := shop.NewBuilder()
//	ann := b.AddPerson("Ann", "Lee")
//	cashier := b.AddStaff(b.AddPerson("Bo", "Kim"))
//	apple := b.AddProduct("Apple", "food", []float64{10})
//	b.AddOrder(cashier, []*shop.Customer{b.AddCustomer(ann)}, placedAt, 100, 7, apple)
//	s := b.Build()
//
// ============================================================================

// Builder assembles a Shop. It is not safe for concurrent use.
type Builder struct {
	people   []*Person
	staff    []*Staff
	products []*Product
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPerson registers a person with no roles.
func (b *Builder) AddPerson(firstName, lastName string) *Person {
	p := &Person{ID: uuid.New(), FirstName: firstName, LastName: lastName}
	b.people = append(b.people, p)
	return p
}

// AddCustomer gives p a new customer role.
func (b *Builder) AddCustomer(p *Person) *Customer {
	c := &Customer{ID: uuid.New(), PersonID: p.ID}
	p.Roles = append(p.Roles, CustomerRole(c))
	return c
}

// AddStaff gives p a new staff role and registers it with the shop.
func (b *Builder) AddStaff(p *Person) *Staff {
	s := &Staff{ID: uuid.New(), PersonID: p.ID}
	p.Roles = append(p.Roles, StaffRole(s))
	b.staff = append(b.staff, s)
	return s
}

// AddProduct registers a product sold by the shop.
func (b *Builder) AddProduct(name, tag string, discounts []float64, limits ...Limit) *Product {
	p := &Product{
		ID:     uuid.New(),
		Name:   name,
		Tag:    Tag{Name: tag},
		Limits: limits,
	}
	for _, pct := range discounts {
		p.Discounts = append(p.Discounts, Discount{Percent: pct})
	}
	b.products = append(b.products, p)
	return p
}

// AddOrder creates an order with its payment, attaches it to the processing
// staff (may be nil) and to every customer on it.
func (b *Builder) AddOrder(staff *Staff, customers []*Customer, placedAt time.Time, subTotal, tax float64, products ...*Product) *Order {
	o := &Order{ID: uuid.New(), PlacedAt: placedAt}
	o.Payment = &Payment{
		ID:       uuid.New(),
		OrderID:  o.ID,
		SubTotal: subTotal,
		Tax:      tax,
		Products: products,
	}
	for _, c := range customers {
		o.CustomerIDs = append(o.CustomerIDs, c.ID)
		c.Orders = append(c.Orders, o)
	}
	if staff != nil {
		staff.Orders = append(staff.Orders, o)
	}
	return o
}

// People returns the registered people in insertion order.
func (b *Builder) People() []*Person {
	return b.people
}

// Build indexes the graph and returns the Shop.
func (b *Builder) Build() *Shop {
	return New(b.people, b.staff, b.products)
}
