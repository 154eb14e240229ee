package person

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
	"person-manager-api/internal/infrastructure/db/postgres"
	roleDB "person-manager-api/internal/infrastructure/db/postgres/role"
)

type Repository struct {
	db  postgres.DB
	now func() time.Time
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) FetchPersonByID(ctx context.Context, id domain.ID) (*domain.Person, error) {
	return r.fetchOne(ctx, SelectPersonByID, id)
}

func (r *Repository) FetchPersonByUsername(ctx context.Context, username string) (*domain.Person, error) {
	return r.fetchOne(ctx, SelectPersonByUsername, username)
}

func (r *Repository) QueryPeople(filter domain.Filter) domain.Collection {
	return peopleQuery{db: r.db, filter: filter}
}

func (r *Repository) CreatePerson(ctx context.Context, req domain.Person) (*domain.Person, error) {
	var out *domain.Person

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := r.prepare(ctx, tx, &req); err != nil {
			return err
		}

		m, err := scanPerson(tx.QueryRow(ctx, InsertPerson,
			req.Username, req.PasswordHash, req.FirstName, req.LastName, req.Email, req.PhoneNumber,
			req.DateOfBirth, req.Age, req.IsActive, req.IsStaff, req.IsSuperuser, roleIDArg(req.Role),
		))
		if err != nil {
			return err
		}
		out = fromDBModel(m)

		return nil
	})
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}

	return out, nil
}

func (r *Repository) UpdatePerson(ctx context.Context, req domain.Person) (*domain.Person, error) {
	var out *domain.Person

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := r.prepare(ctx, tx, &req); err != nil {
			return err
		}

		m, err := scanPerson(tx.QueryRow(ctx, UpdatePersonByID,
			req.Username, req.PasswordHash, req.FirstName, req.LastName, req.Email, req.PhoneNumber,
			req.DateOfBirth, req.Age, req.IsActive, req.IsStaff, req.IsSuperuser, roleIDArg(req.Role),
			req.ID,
		))
		if err != nil {
			return err
		}
		out = fromDBModel(m)

		return nil
	})
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return out, nil
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id domain.ID, at time.Time) error {
	if _, err := r.db.Exec(ctx, UpdateLastLogin, at, id); err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}

	return nil
}

func (r *Repository) DeletePerson(ctx context.Context, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeletePersonByID, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// prepare enforces the write invariants: age follows the date of birth and a
// person without a role gets the guest role, created on first use.
func (r *Repository) prepare(ctx context.Context, tx pgx.Tx, p *domain.Person) error {
	p.PrepareForSave(r.now())

	if p.Role == nil {
		guest, err := roleDB.GetOrCreate(ctx, tx, role.Guest, role.DefaultDescription(role.Guest))
		if err != nil {
			return err
		}
		p.Role = guest
	}

	return nil
}

func (r *Repository) fetchOne(ctx context.Context, sql string, arg any) (*domain.Person, error) {
	m, err := scanPerson(r.db.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
