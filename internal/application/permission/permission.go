// Package permission holds the access predicates evaluated before a handler
// runs. A nil person is an anonymous caller, and every predicate refuses it.
package permission

import (
	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
)

type Predicate func(p *person.Person) bool

func IsAuthenticated(p *person.Person) bool { return p != nil }

// IsAdmin admits only people holding the admin role. A person with no role
// counts as a guest.
func IsAdmin(p *person.Person) bool {
	return IsAuthenticated(p) && p.RoleName() == role.Admin
}

func IsAdminOrGuest(p *person.Person) bool {
	if !IsAuthenticated(p) {
		return false
	}
	switch p.RoleName() {
	case role.Admin, role.Guest:
		return true
	}
	return false
}
