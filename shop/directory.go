package shop

import "github.com/google/uuid"

// ============================================================================
// DIRECTORY — identity index for back-references
// ============================================================================
// Resolves the upward links of the graph by ID. Built eagerly and never
// modified afterwards, so lookups are safe from many goroutines.
// ============================================================================

// Directory indexes people, their roles and the orders reachable from them.
type Directory struct {
	ordered   []*Person
	people    map[uuid.UUID]*Person
	customers map[uuid.UUID]*Customer
	staff     map[uuid.UUID]*Staff
	orders    map[uuid.UUID]*Order
}

var emptyDirectory = NewDirectory(nil)

// NewDirectory indexes people, their customer and staff roles, and every
// order those roles hold.
func NewDirectory(people []*Person) *Directory {
	d := &Directory{
		people:    make(map[uuid.UUID]*Person, len(people)),
		customers: make(map[uuid.UUID]*Customer),
		staff:     make(map[uuid.UUID]*Staff),
		orders:    make(map[uuid.UUID]*Order),
	}
	for _, p := range people {
		if p == nil {
			continue
		}
		if _, dup := d.people[p.ID]; !dup {
			d.ordered = append(d.ordered, p)
		}
		d.people[p.ID] = p
		for _, r := range p.Roles {
			switch r.Kind {
			case RoleCustomer:
				if r.Customer != nil {
					d.customers[r.Customer.ID] = r.Customer
					d.indexOrders(r.Customer.Orders)
				}
			case RoleStaff:
				if r.Staff != nil {
					d.staff[r.Staff.ID] = r.Staff
					d.indexOrders(r.Staff.Orders)
				}
			}
		}
	}
	return d
}

func (d *Directory) indexStaffOrders(staff []*Staff) {
	for _, s := range staff {
		if s == nil {
			continue
		}
		if _, ok := d.staff[s.ID]; !ok {
			d.staff[s.ID] = s
		}
		d.indexOrders(s.Orders)
	}
}

func (d *Directory) indexOrders(orders []*Order) {
	for _, o := range orders {
		if o != nil {
			d.orders[o.ID] = o
		}
	}
}

// Person looks up a person by ID.
func (d *Directory) Person(id uuid.UUID) (*Person, bool) {
	p, ok := d.people[id]
	return p, ok
}

// Customer looks up a customer role by ID.
func (d *Directory) Customer(id uuid.UUID) (*Customer, bool) {
	c, ok := d.customers[id]
	return c, ok
}

// Staff looks up a staff role by ID.
func (d *Directory) Staff(id uuid.UUID) (*Staff, bool) {
	s, ok := d.staff[id]
	return s, ok
}

// Order looks up an order by ID.
func (d *Directory) Order(id uuid.UUID) (*Order, bool) {
	o, ok := d.orders[id]
	return o, ok
}

// DisplayName resolves a person ID to "First Last".
func (d *Directory) DisplayName(personID uuid.UUID) (string, bool) {
	p, ok := d.people[personID]
	if !ok {
		return "", false
	}
	return p.DisplayName(), true
}

// People returns the indexed people in registration order.
func (d *Directory) People() []*Person {
	return append([]*Person(nil), d.ordered...)
}

// Len reports how many people are indexed.
func (d *Directory) Len() int {
	return len(d.people)
}
