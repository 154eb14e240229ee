package person

import "time"

type (
	Person struct {
		ID           uint64
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

		LastLogin  *time.Time
		DateJoined time.Time
		CreatedAt  time.Time
		UpdatedAt  time.Time

		// joined from roles, all NULL when role_id is NULL
		RoleID          *uint64
		RoleName        *string
		RoleDescription *string
		RoleCreatedAt   *time.Time
		RoleUpdatedAt   *time.Time
	}
	People []*Person
)

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(s scanner) (*Person, error) {
	m := new(Person)
	if err := s.Scan(
		&m.ID,
		&m.Username,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.PhoneNumber,
		&m.DateOfBirth,
		&m.Age,

		&m.IsActive,
		&m.IsStaff,
		&m.IsSuperuser,

		&m.LastLogin,
		&m.DateJoined,
		&m.CreatedAt,
		&m.UpdatedAt,

		&m.RoleID,
		&m.RoleName,
		&m.RoleDescription,
		&m.RoleCreatedAt,
		&m.RoleUpdatedAt,
	); err != nil {
		return nil, err
	}

	return m, nil
}
