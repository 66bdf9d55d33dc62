package shop

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// SHOP DOMAIN MODEL — read-only object graph queried by the query package
// ============================================================================
// Ownership flows downward: Shop → Staff → Order → Payment → Product.
// Upward links (Role → Person, Payment → Order, Order → Customers) are IDs
// resolved through a Directory, never owning pointers.
//
// The graph is wired once by a loader (Builder, helpers.ParseShopYAML) and is
// treated as immutable afterwards.
// ============================================================================

// Limit types observed in shop data. The set is open; any string is allowed.
const (
	LimitMin = "min"
	LimitMax = "max"
)

// Person is an identity that plays zero or more roles.
type Person struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []Role    `json:"roles"`
}

// DisplayName returns "First Last".
func (p *Person) DisplayName() string {
	if p == nil {
		return ""
	}
	return p.FirstName + " " + p.LastName
}

// Customer is the role of a person placing orders.
type Customer struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"personId"`
	Orders   []*Order  `json:"orders"`
}

// Staff is the role of a person processing orders.
type Staff struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"personId"`
	Orders   []*Order  `json:"orders"`
}

// Order is a dated purchase carrying exactly one Payment.
// CustomerIDs are the customers associated with the order's payment.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	PlacedAt    time.Time   `json:"placedAt"`
	Payment     *Payment    `json:"payment"`
	CustomerIDs []uuid.UUID `json:"customerIds"`
}

// Year reports the calendar year of the order in its own location.
func (o *Order) Year() int {
	return o.PlacedAt.Year()
}

// Payment is the financial record of an Order.
type Payment struct {
	ID       uuid.UUID  `json:"id"`
	OrderID  uuid.UUID  `json:"orderId"`
	SubTotal float64    `json:"subTotal"`
	Tax      float64    `json:"tax"`
	Products []*Product `json:"products"`
}

// Product is a sellable item with its discounts and inventory limits.
type Product struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Tag       Tag        `json:"tag"`
	Discounts []Discount `json:"discounts"`
	Limits    []Limit    `json:"limits"`
}

// Discount is a percentage reduction applied to a product.
type Discount struct {
	Percent float64 `json:"percent"`
}

// Limit is a typed inventory threshold (e.g. "min").
type Limit struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Tag is a category label.
type Tag struct {
	Name string `json:"name"`
}

// Shop is the aggregate root. Build it with New (or Builder.Build): the
// directory that resolves back-references (order to customers, role to
// person) is only created there. A Shop written as a struct literal still
// answers queries that walk Staff and Products, but every ID lookup misses,
// so customer-facing tax queries return nothing.
type Shop struct {
	Staff    []*Staff   `json:"staff"`
	Products []*Product `json:"products"`

	dir *Directory
}

// New builds a Shop and indexes the people who staff and shop in it.
// The directory is built eagerly so the shop is safe for concurrent reads.
func New(people []*Person, staff []*Staff, products []*Product) *Shop {
	dir := NewDirectory(people)
	dir.indexStaffOrders(staff)
	return &Shop{
		Staff:    staff,
		Products: products,
		dir:      dir,
	}
}

// People returns everyone known to the shop, in registration order.
func (s *Shop) People() []*Person {
	return s.Directory().People()
}

// Directory returns the shop's identity index. A Shop built as a literal
// has an empty directory, so back-references resolve to nothing.
func (s *Shop) Directory() *Directory {
	if s == nil || s.dir == nil {
		return emptyDirectory
	}
	return s.dir
}
