package role

import (
	"errors"
	"time"
)

// Name is one of the fixed role names.
type Name string

const (
	Admin Name = "admin"
	Guest Name = "guest"
)

var ErrRoleNotFound = errors.New("role not found")

var descriptions = map[Name]string{
	Admin: "Administrator with full access",
	Guest: "Guest with limited access",
}

type (
	ID   uint64
	Role struct {
		ID          ID
		Name        Name
		Description *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Roles []*Role
)

func (n Name) IsValid() bool {
	_, ok := descriptions[n]
	return ok
}

// Label is the human readable form of the name.
func (n Name) Label() string {
	switch n {
	case Admin:
		return "Administrator"
	case Guest:
		return "Guest"
	}
	return string(n)
}

// DefaultDescription is used when a role is created implicitly.
func DefaultDescription(n Name) string { return descriptions[n] }
