package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domain "person-manager-api/internal/domain/role"
	"person-manager-api/internal/infrastructure/db/postgres"
)

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchRoles(ctx context.Context) (domain.Roles, error) {
	rows, err := r.db.Query(ctx, SelectRoles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rs Roles
	for rows.Next() {
		m := new(Role)
		if err = rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		rs = append(rs, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(rs), nil
}

func (r *Repository) FetchRoleByID(ctx context.Context, id domain.ID) (*domain.Role, error) {
	m := new(Role)
	err := r.db.QueryRow(ctx, SelectRoleByID, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) GetOrCreateRole(ctx context.Context, name domain.Name, description string) (*domain.Role, error) {
	return GetOrCreate(ctx, r.db, name, description)
}

// GetOrCreate is shared with the person repository so that the default role
// can be resolved inside the same transaction as the person write.
func GetOrCreate(ctx context.Context, q queryRower, name domain.Name, description string) (*domain.Role, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("unknown role %q", name)
	}

	m := new(Role)
	err := q.QueryRow(ctx, UpsertRole, string(name), description).
		Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = q.QueryRow(ctx, SelectRoleByName, string(name)).
			Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("get or create role %s: %w", name, err)
	}

	return fromDBModel(m), nil
}

func (r *Repository) DeleteRole(ctx context.Context, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteRoleByID, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
