package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "personmanager"
	leeway = 5 * time.Second
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Service signs and verifies session cookie values.
type Service struct {
	key    []byte
	parser *jwt.Parser
}

func New(secret string) *Service {
	return &Service{
		key: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(leeway),
		),
	}
}

// Claims is the payload of a session cookie. The server-side session is the
// source of truth; the signature only keeps forged ids away from the store.
type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	PersonID  uint64    `json:"person_id"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateJWT(sessionID uuid.UUID, personID uint64, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		PersonID:  personID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(personID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	var claims Claims
	token, err := s.parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.SessionID == uuid.Nil || claims.Subject != strconv.FormatUint(claims.PersonID, 10) {
		return nil, ErrInvalidClaims
	}
	return &claims, nil
}
