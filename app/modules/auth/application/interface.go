package authservice

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrInvalidToken wraps every token validation failure.
	ErrInvalidToken = errors.New("invalid authentication token")
	// ErrGenerateToken wraps signing failures.
	ErrGenerateToken = errors.New("failed to generate token")
)

// Service defines the authentication service interface.
type Service interface {
	// IssueToken mints a bearer token for an active user. A zero ttl uses the
	// configured default.
	IssueToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*TokenResponse, error)

	// RefreshToken mints a fresh token for an already authenticated actor.
	RefreshToken(ctx context.Context, actor authdomain.Actor) (*TokenResponse, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// TokenResponse is a signed bearer token and its expiry.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserReader loads the user a token is issued for.
type UserReader interface {
	GetUserByID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error)
}
