package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/geekcolab/shopstats/shop"
)

// ============================================================================
// YAML HELPER — Parses a shop fixture into a *shop.Shop
// ============================================================================
// Consumer reads the fixture from wherever it lives (file, embed, test).
// Entries refer to each other by local keys; the helper wires the graph
// through shop.Builder, so back-references are consistent by construction.
// ============================================================================

// ErrUnknownReference is returned when a fixture entry names a key that
// was never declared.
var ErrUnknownReference = errors.New("unknown reference")

// Fixture is the on-disk shape of a shop.
type Fixture struct {
	Products []ProductEntry `yaml:"products"`
	People   []PersonEntry  `yaml:"people"`
	Orders   []OrderEntry   `yaml:"orders"`
}

type ProductEntry struct {
	Key       string       `yaml:"key"`
	Name      string       `yaml:"name"`
	Tag       string       `yaml:"tag"`
	Discounts []float64    `yaml:"discounts"`
	Limits    []LimitEntry `yaml:"limits"`
}

type LimitEntry struct {
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
}

type PersonEntry struct {
	Key       string   `yaml:"key"`
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	Roles     []string `yaml:"roles"`
}

type OrderEntry struct {
	Staff     string    `yaml:"staff"`
	Customers []string  `yaml:"customers"`
	PlacedAt  time.Time `yaml:"placed_at"`
	SubTotal  float64   `yaml:"subtotal"`
	Tax       float64   `yaml:"tax"`
	Products  []string  `yaml:"products"`
}

// ParseShopYAML decodes fixture bytes and builds the shop graph.
func ParseShopYAML(data []byte) (*shop.Shop, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode shop fixture: %w", err)
	}
	return BuildShop(fx)
}

// BuildShop wires a decoded fixture into a shop. Entries are added in file
// order, so query results that depend on encounter order follow the file.
func BuildShop(fx Fixture) (*shop.Shop, error) {
	b := shop.NewBuilder()

	products := make(map[string]*shop.Product, len(fx.Products))
	for i, pe := range fx.Products {
		key := pe.Key
		if key == "" {
			key = pe.Name
		}
		if _, dup := products[key]; dup {
			return nil, fmt.Errorf("products[%d]: duplicate key %q", i, key)
		}
		limits := make([]shop.Limit, 0, len(pe.Limits))
		for _, l := range pe.Limits {
			limits = append(limits, shop.Limit{Type: l.Type, Value: l.Value})
		}
		products[key] = b.AddProduct(pe.Name, pe.Tag, pe.Discounts, limits...)
	}

	customers := make(map[string]*shop.Customer)
	staff := make(map[string]*shop.Staff)
	seen := make(map[string]bool, len(fx.People))
	for i, pe := range fx.People {
		if pe.Key == "" {
			return nil, fmt.Errorf("people[%d]: key is required", i)
		}
		if seen[pe.Key] {
			return nil, fmt.Errorf("people[%d]: duplicate key %q", i, pe.Key)
		}
		seen[pe.Key] = true

		p := b.AddPerson(pe.FirstName, pe.LastName)
		for _, r := range pe.Roles {
			kind, ok := shop.ParseRoleKind(r)
			if !ok {
				return nil, fmt.Errorf("people[%d]: unknown role %q", i, r)
			}
			switch kind {
			case shop.RoleCustomer:
				if customers[pe.Key] == nil {
					customers[pe.Key] = b.AddCustomer(p)
				}
			case shop.RoleStaff:
				if staff[pe.Key] == nil {
					staff[pe.Key] = b.AddStaff(p)
				}
			}
		}
	}

	for i, oe := range fx.Orders {
		var st *shop.Staff
		if oe.Staff != "" {
			st = staff[oe.Staff]
			if st == nil {
				return nil, fmt.Errorf("orders[%d]: staff %q: %w", i, oe.Staff, ErrUnknownReference)
			}
		}

		cs := make([]*shop.Customer, 0, len(oe.Customers))
		for _, key := range oe.Customers {
			c := customers[key]
			if c == nil {
				return nil, fmt.Errorf("orders[%d]: customer %q: %w", i, key, ErrUnknownReference)
			}
			cs = append(cs, c)
		}

		ps := make([]*shop.Product, 0, len(oe.Products))
		for _, key := range oe.Products {
			p := products[key]
			if p == nil {
				return nil, fmt.Errorf("orders[%d]: product %q: %w", i, key, ErrUnknownReference)
			}
			ps = append(ps, p)
		}

		b.AddOrder(st, cs, oe.PlacedAt, oe.SubTotal, oe.Tax, ps...)
	}

	return b.Build(), nil
}
