package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{}, nil
}

// ------------------------
// Fake User Reader
// ------------------------

type FakeUserReader struct {
	trace []string

	GetUserByIDFunc func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error)
}

func (f *FakeUserReader) Trace() []string {
	return f.trace
}

func (f *FakeUserReader) GetUserByID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error) {
	f.trace = append(f.trace, "GetUserByID")
	if f.GetUserByIDFunc != nil {
		return f.GetUserByIDFunc(ctx, db, userID)
	}
	return &userdb.User{ID: userID, Role: string(authdomain.RoleUser)}, nil
}
