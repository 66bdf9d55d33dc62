package shop

import "encoding/json"

// RoleKind tags which variant a Role holds.
type RoleKind int

const (
	RoleUnknown RoleKind = iota
	RoleCustomer
	RoleStaff
)

func (k RoleKind) String() string {
	switch k {
	case RoleCustomer:
		return "customer"
	case RoleStaff:
		return "staff"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind by name.
func (k RoleKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ParseRoleKind maps "customer"/"staff" to a RoleKind.
func ParseRoleKind(s string) (RoleKind, bool) {
	switch s {
	case "customer":
		return RoleCustomer, true
	case "staff":
		return RoleStaff, true
	default:
		return RoleUnknown, false
	}
}

// Role is a tagged union over the capabilities a Person has.
// Exactly the payload matching Kind is set.
type Role struct {
	Kind     RoleKind  `json:"kind"`
	Customer *Customer `json:"customer,omitempty"`
	Staff    *Staff    `json:"staff,omitempty"`
}

// CustomerRole wraps c as a Role.
func CustomerRole(c *Customer) Role {
	return Role{Kind: RoleCustomer, Customer: c}
}

// StaffRole wraps s as a Role.
func StaffRole(s *Staff) Role {
	return Role{Kind: RoleStaff, Staff: s}
}
