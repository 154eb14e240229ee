package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"person-manager-api/internal/application/ports"
	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/session"
	"person-manager-api/internal/infrastructure/metrics"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInactivePerson        = errors.New("inactive person")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

// dummyHash keeps the cost of a login for an unknown username equal to the
// cost of a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("person-manager-dummy"), bcrypt.DefaultCost)

type AuthService struct {
	personRepository person.Repository
	sessions         session.Store
	tokens           ports.SessionTokens
	ttl              time.Duration
	logger           *zap.Logger
	mCounter         *prometheus.CounterVec
	now              func() time.Time
}

func NewAuthService(
	personRepository person.Repository,
	sessions session.Store,
	tokens ports.SessionTokens,
	ttl time.Duration,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.AuthService {
	return &AuthService{
		personRepository: personRepository,
		sessions:         sessions,
		tokens:           tokens,
		ttl:              ttl,
		logger:           logger,
		mCounter:         mCounter,
		now:              time.Now,
	}
}

func (as *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	p, err := as.personRepository.FetchPersonByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, err
	}

	hash := dummyHash
	if p != nil {
		hash = []byte(p.PasswordHash)
	}
	if err = bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || p == nil {
		as.mCounter.WithLabelValues(metrics.LoginFailed).Inc()
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !p.IsActive {
		as.mCounter.WithLabelValues(metrics.LoginFailed).Inc()
		return "", time.Time{}, ErrInactivePerson
	}

	now := as.now()
	s := session.New(p.ID, now, as.ttl)
	if err = as.sessions.CreateSession(ctx, s); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	token, err := as.tokens.GenerateJWT(s.ID, uint64(p.ID), s.ExpiresAt)
	if err != nil {
		as.logger.Error("GenerateJWT() error", zap.Error(err), zap.Uint64("person_id", uint64(p.ID)))
		return "", time.Time{}, ErrFailedToGenerateToken
	}

	if err = as.personRepository.UpdateLastLogin(ctx, p.ID, now); err != nil {
		as.logger.Warn("UpdateLastLogin() error", zap.Error(err), zap.Uint64("person_id", uint64(p.ID)))
	}

	as.mCounter.WithLabelValues(metrics.LoginSuccess).Inc()

	return token, s.ExpiresAt, nil
}

func (as *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := as.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}

	return as.sessions.DeleteSession(ctx, claims.SessionID)
}

func (as *AuthService) Authenticate(ctx context.Context, token string) (*person.Person, error) {
	claims, err := as.tokens.ValidateToken(token)
	if err != nil {
		return nil, nil
	}

	s, err := as.sessions.FetchSession(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Expired(as.now()) || uint64(s.PersonID) != claims.PersonID {
		return nil, nil
	}

	p, err := as.personRepository.FetchPersonByID(ctx, s.PersonID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, nil
	}

	return p, nil
}
