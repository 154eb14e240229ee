package person

import (
	"time"

	"person-manager-api/internal/domain/role"
)

// Changes carries the writable fields of a create or update request. A nil
// field is left untouched. An empty PhoneNumber or a zero DateOfBirth clears
// the stored value.
type Changes struct {
	Username    *string
	Password    *string
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	DateOfBirth *time.Time
	IsActive    *bool
	Role        *role.Name
}

// Apply copies every set field except Password and Role, which need hashing
// and a lookup respectively.
func (c Changes) Apply(p *Person) {
	if c.Username != nil {
		p.Username = *c.Username
	}
	if c.FirstName != nil {
		p.FirstName = NormalizeName(*c.FirstName)
	}
	if c.LastName != nil {
		p.LastName = NormalizeName(*c.LastName)
	}
	if c.Email != nil {
		p.Email = *c.Email
	}
	if c.PhoneNumber != nil {
		if *c.PhoneNumber == "" {
			p.PhoneNumber = nil
		} else {
			phone := *c.PhoneNumber
			p.PhoneNumber = &phone
		}
	}
	if c.DateOfBirth != nil {
		if c.DateOfBirth.IsZero() {
			p.DateOfBirth, p.Age = nil, nil
		} else {
			dob := *c.DateOfBirth
			p.DateOfBirth = &dob
		}
	}
	if c.IsActive != nil {
		p.IsActive = *c.IsActive
	}
}
