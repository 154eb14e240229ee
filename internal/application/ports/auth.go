package ports

import (
	"context"
	"time"

	"person-manager-api/internal/domain/person"
)

type AuthService interface {
	// Login returns a signed session token and its expiry.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to an active person. It returns
	// nil, nil for unknown, expired or revoked sessions.
	Authenticate(ctx context.Context, token string) (*person.Person, error)
}
