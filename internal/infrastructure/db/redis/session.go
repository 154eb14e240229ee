package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "person-manager-api/internal/domain/session"
)

// kv is the part of the redis client the session store talks to.
type kv interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore keeps sessions as JSON values under session:<id>, expiring
// together with the session itself.
type SessionStore struct {
	client kv
	now    func() time.Time
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func (s *SessionStore) CreateSession(ctx context.Context, sess domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err = s.client.Set(ctx, sessionKey(sess.ID), b, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

func (s *SessionStore) FetchSession(ctx context.Context, id domain.ID) (*domain.Session, error) {
	b, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	var sess domain.Session
	if err = json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Expired(s.now()) {
		return nil, nil
	}

	return &sess, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, id domain.ID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id domain.ID) string { return "session:" + id.String() }
