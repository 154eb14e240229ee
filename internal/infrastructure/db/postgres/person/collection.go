package person

import (
	"context"
	"fmt"

	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/infrastructure/db/postgres"
)

const orderByID = " ORDER BY p.id"

// peopleQuery is the lazy result of Repository.QueryPeople.
type peopleQuery struct {
	db     postgres.DB
	filter domain.Filter
}

func (q peopleQuery) Count(ctx context.Context) (int, error) {
	where, args := buildWhere(q.filter)

	var n int
	if err := q.db.QueryRow(ctx, CountPeople+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}

	return n, nil
}

func (q peopleQuery) Slice(ctx context.Context, offset, limit int) ([]*domain.Person, error) {
	where, args := buildWhere(q.filter)
	args = append(args, limit, offset)
	sql := SelectPeople + where + orderByID +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return q.fetch(ctx, sql, args...)
}

func (q peopleQuery) All(ctx context.Context) ([]*domain.Person, error) {
	where, args := buildWhere(q.filter)

	return q.fetch(ctx, SelectPeople+where+orderByID, args...)
}

func (q peopleQuery) fetch(ctx context.Context, sql string, args ...any) ([]*domain.Person, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	defer rows.Close()

	var ps People
	for rows.Next() {
		m, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ps), nil
}
