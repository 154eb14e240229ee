package person

import (
	"strings"
	"time"

	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
)

// Representation field names.
const (
	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldDateOfBirth = "date_of_birth"
	FieldAge         = "age"
	FieldUsername    = "username"
	FieldRole        = "role"
	FieldIsActive    = "is_active"
)

// ToMap renders the public representation of a person without the excluded
// fields. The password hash is never part of it.
func ToMap(p *domain.Person, exclude ...string) map[string]any {
	m := map[string]any{
		FieldID:          uint64(p.ID),
		FieldFirstName:   p.FirstName,
		FieldLastName:    p.LastName,
		FieldEmail:       p.Email,
		FieldPhoneNumber: nil,
		FieldDateOfBirth: nil,
		FieldAge:         nil,
		FieldUsername:    p.Username,
		FieldRole:        nil,
		FieldIsActive:    p.IsActive,
	}
	if p.PhoneNumber != nil {
		m[FieldPhoneNumber] = *p.PhoneNumber
	}
	if p.Age != nil {
		m[FieldAge] = *p.Age
	}
	if p.DateOfBirth != nil {
		m[FieldDateOfBirth] = p.DateOfBirth.Format(domain.DateLayout)
	}
	if p.Role != nil {
		m[FieldRole] = string(p.Role.Name)
	}

	for _, f := range exclude {
		delete(m, f)
	}

	return m
}

// Projection returns ToMap bound to a fixed exclusion list.
func Projection(exclude ...string) func(*domain.Person) map[string]any {
	return func(p *domain.Person) map[string]any { return ToMap(p, exclude...) }
}

func (r CreateRequest) ToDomain() (domain.Changes, error) {
	return UpdateRequest(r).ToDomain()
}

func (r UpdateRequest) ToDomain() (domain.Changes, error) {
	c := domain.Changes{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		IsActive:  r.IsActive,
	}

	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		c.Email = &email
	}
	if r.PhoneNumber != nil {
		phone := ""
		if strings.TrimSpace(*r.PhoneNumber) != "" {
			var err error
			if phone, err = domain.NormalizePhoneNumber(*r.PhoneNumber); err != nil {
				return domain.Changes{}, err
			}
		}
		c.PhoneNumber = &phone
	}
	if r.DateOfBirth != nil {
		var dob time.Time
		if *r.DateOfBirth != "" {
			var err error
			if dob, err = domain.ParseBirthDate(*r.DateOfBirth); err != nil {
				return domain.Changes{}, err
			}
		}
		c.DateOfBirth = &dob
	}
	if r.Role != nil {
		n := role.Name(*r.Role)
		c.Role = &n
	}

	return c, nil
}
