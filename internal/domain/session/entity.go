package session

import (
	"time"

	"github.com/google/uuid"

	"person-manager-api/internal/domain/person"
)

type (
	ID      = uuid.UUID
	Session struct {
		ID        ID
		PersonID  person.ID
		CreatedAt time.Time
		ExpiresAt time.Time
	}
)

func New(personID person.ID, now time.Time, ttl time.Duration) Session {
	return Session{
		ID:        uuid.New(),
		PersonID:  personID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
