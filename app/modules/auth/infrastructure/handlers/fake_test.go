package authhandlers

import (
	"context"
	"time"

	authservice "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	"github.com/google/uuid"
)

// FakeService is a programmable fake for authservice.Service.
type FakeService struct {
	IssueTokenFunc    func(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*authservice.TokenResponse, error)
	RefreshTokenFunc  func(ctx context.Context, actor authdomain.Actor) (*authservice.TokenResponse, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

var _ authservice.Service = (*FakeService)(nil)

func (f *FakeService) IssueToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*authservice.TokenResponse, error) {
	if f.IssueTokenFunc != nil {
		return f.IssueTokenFunc(ctx, userID, ttl)
	}
	return &authservice.TokenResponse{Token: "token"}, nil
}

func (f *FakeService) RefreshToken(ctx context.Context, actor authdomain.Actor) (*authservice.TokenResponse, error) {
	if f.RefreshTokenFunc != nil {
		return f.RefreshTokenFunc(ctx, actor)
	}
	return &authservice.TokenResponse{Token: "token"}, nil
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return &authdomain.Claims{}, nil
}
