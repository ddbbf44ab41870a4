package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleTech  Role = "tech"
)

// Roles lists every known role, most privileged first.
var Roles = []Role{RoleOwner, RoleAdmin, RoleTech}

func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleTech:
		return true
	}
	return false
}

// ParseRole converts a string to a Role. There is no default role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

// Actor is the authenticated identity a call runs on behalf of.
type Actor struct {
	UserID    string
	AccountID string
	Role      Role
}

// Validate ensures the actor carries a user, an account and a known role.
func (a Actor) Validate() error {
	if strings.TrimSpace(a.UserID) == "" {
		return errors.New("actor user id is required")
	}
	if strings.TrimSpace(a.AccountID) == "" {
		return errors.New("actor account id is required")
	}
	if !a.Role.Valid() {
		return fmt.Errorf("invalid actor role: %q", a.Role)
	}
	return nil
}
