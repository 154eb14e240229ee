package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"person-manager-api/internal/domain/person"
	domain "person-manager-api/internal/domain/session"
	"person-manager-api/internal/infrastructure/db/postgres"
)

// Store keeps sessions in the sessions table.
type Store struct {
	db postgres.DB
}

func NewStore(db postgres.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateSession(ctx context.Context, sess domain.Session) error {
	if _, err := s.db.Exec(ctx, InsertSession,
		sess.ID, uint64(sess.PersonID), sess.CreatedAt, sess.ExpiresAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (s *Store) FetchSession(ctx context.Context, id domain.ID) (*domain.Session, error) {
	var (
		sess     domain.Session
		personID uint64
	)
	err := s.db.QueryRow(ctx, SelectSessionByID, id).
		Scan(&sess.ID, &personID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	sess.PersonID = person.ID(personID)

	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id domain.ID) error {
	_, err := s.db.Exec(ctx, DeleteSessionByID, id)
	return err
}

// PurgeExpired drops sessions that expired before now and reports how many
// rows went away.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, DeleteExpired, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
