package person

import (
	"errors"
	"time"

	"person-manager-api/internal/domain/role"
)

var (
	ErrPersonNotFound = errors.New("person not found")
	ErrUsernameTaken  = errors.New("a person with that username already exists")
)

type (
	ID     uint64
	Person struct {
		ID           ID
		Username     string
		PasswordHash string
		FirstName    string
		LastName     string
		Email        string
		PhoneNumber  *string
		DateOfBirth  *time.Time
		Age          *int

		IsActive    bool
		IsStaff     bool
		IsSuperuser bool

		Role *role.Role

		LastLogin  *time.Time
		DateJoined time.Time
		CreatedAt  time.Time
		UpdatedAt  time.Time
	}
	People []*Person
)

// RoleName falls back to guest when no role is assigned.
func (p *Person) RoleName() role.Name {
	if p.Role == nil {
		return role.Guest
	}
	return p.Role.Name
}

// PrepareForSave recomputes the derived age. It must run right before every
// write of the record.
func (p *Person) PrepareForSave(today time.Time) {
	if p.DateOfBirth == nil {
		return
	}
	age := CalculateAge(*p.DateOfBirth, today)
	p.Age = &age
}

func (p *Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
