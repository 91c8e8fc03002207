package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the closed set of marketplace roles supplied by the identity provider.
// Authorization code switches over it exhaustively.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleRestaurant
	RoleRider
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer:   "customer",
	RoleRestaurant: "restaurant",
	RoleRider:      "rider",
	RoleAdmin:      "admin",
}

// ParseRole maps the wire representation to a Role.
func ParseRole(raw string) (Role, error) {
	for role, name := range roleNames {
		if name == raw {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", raw))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}
