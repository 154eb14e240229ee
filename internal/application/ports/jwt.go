package ports

import (
	"time"

	"github.com/google/uuid"

	"person-manager-api/internal/infrastructure/jwt"
)

type SessionTokens interface {
	GenerateJWT(sessionID uuid.UUID, personID uint64, expiresAt time.Time) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}
