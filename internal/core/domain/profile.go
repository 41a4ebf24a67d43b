package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the coarse permission tier stored on a user profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrMalformedProfile = errors.New("malformed profile")
	ErrInvalidAction    = errors.New("invalid action")
	ErrSelfModification = errors.New("cannot modify own account")
	ErrUnauthenticated  = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// ParseRole maps a stored role string to a Role. Anything other than the
// two known tiers is rejected.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrMalformedProfile, s)
}

// Access is the result of a role lookup.
type Access struct {
	Role     Role `json:"role"`
	Disabled bool `json:"disabled"`
}

// IsAdmin reports whether the access grants the admin area. A disabled
// profile never does, whatever its role.
func (a Access) IsAdmin() bool {
	return a.Role == RoleAdmin && !a.Disabled
}

// Profile is the per-user record managed from the admin back-office.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      Role      `json:"role"`
	Disabled  bool      `json:"is_disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Access returns the role/disabled pair of the profile.
func (p *Profile) Access() Access {
	return Access{Role: p.Role, Disabled: p.Disabled}
}
