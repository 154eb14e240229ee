package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
)

// SeedAccount describes one account ensured by the Seeder.
type SeedAccount struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth string
	Role        role.Name
	IsStaff     bool
	IsSuperuser bool
}

// DefaultAccounts are the admin and guest accounts every installation starts
// with.
func DefaultAccounts(adminPassword, guestPassword string) []SeedAccount {
	return []SeedAccount{
		{
			Username:    "admin",
			Password:    adminPassword,
			FirstName:   "Admin",
			LastName:    "User",
			Email:       "admin@example.com",
			DateOfBirth: "1995-09-01",
			Role:        role.Admin,
			IsStaff:     true,
			IsSuperuser: true,
		},
		{
			Username:    "guest",
			Password:    guestPassword,
			FirstName:   "Guest",
			LastName:    "User",
			Email:       "guest@example.com",
			DateOfBirth: "2015-01-01",
			Role:        role.Guest,
		},
	}
}

type Seeder struct {
	personRepository person.Repository
	roleRepository   role.Repository
	logger           *zap.Logger
}

func NewSeeder(personRepository person.Repository, roleRepository role.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{
		personRepository: personRepository,
		roleRepository:   roleRepository,
		logger:           logger,
	}
}

// Seed ensures both roles and the given accounts exist. Existing accounts are
// left as they are, so running it twice is harmless.
func (s *Seeder) Seed(ctx context.Context, accounts []SeedAccount) error {
	roles := make(map[role.Name]*role.Role, 2)
	for _, n := range []role.Name{role.Admin, role.Guest} {
		r, err := s.roleRepository.GetOrCreateRole(ctx, n, role.DefaultDescription(n))
		if err != nil {
			return err
		}
		roles[n] = r
	}

	for _, a := range accounts {
		existing, err := s.personRepository.FetchPersonByUsername(ctx, a.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			s.logger.Info("person already exists", zap.String("username", a.Username))
			continue
		}

		p, err := newSeedPerson(a, roles[a.Role])
		if err != nil {
			return err
		}
		created, err := s.personRepository.CreatePerson(ctx, p)
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.Username, err)
		}

		s.logger.Info("person created",
			zap.String("username", created.Username),
			zap.String("name", created.FullName()),
			zap.String("role", string(created.RoleName())),
		)
	}

	return nil
}

func newSeedPerson(a SeedAccount, r *role.Role) (person.Person, error) {
	dob, err := person.ParseBirthDate(a.DateOfBirth)
	if err != nil {
		return person.Person{}, err
	}
	hash, err := HashPassword(a.Password)
	if err != nil {
		return person.Person{}, err
	}

	return person.Person{
		Username:     a.Username,
		PasswordHash: hash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		DateOfBirth:  &dob,
		IsActive:     true,
		IsStaff:      a.IsStaff,
		IsSuperuser:  a.IsSuperuser,
		Role:         r,
	}, nil
}
