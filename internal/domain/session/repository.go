package session

import "context"

// Store keeps server-side sessions. FetchSession returns nil, nil when the
// session does not exist.
type Store interface {
	CreateSession(ctx context.Context, s Session) error
	FetchSession(ctx context.Context, id ID) (*Session, error)
	DeleteSession(ctx context.Context, id ID) error
}
