package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
}

const DefaultTokenTTL = 24 * time.Hour

// service implements the Service interface.
type service struct {
	users       UserReader
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	users UserReader,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultTokenTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("auth")
	}
	return &service{
		users:       users,
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		tracer:      tracer,
		now:         time.Now,
	}
}

// IssueToken mints a bearer token for an active user.
func (s *service) IssueToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*TokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.IssueToken")
	defer span.End()

	user, err := s.users.GetUserByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.Active() {
		s.logger.WarnContext(ctx, "Token requested for inactive user",
			attr.ExtractCorrelationID(ctx),
			attr.UUID("user_id", userID),
		)
		return nil, apperrors.Forbidden("user is disabled")
	}

	return s.sign(ctx, user.ID, authdomain.Role(user.Role), ttl)
}

// RefreshToken mints a new token for the actor. The role is re-read from the
// user record, not copied from the old token.
func (s *service) RefreshToken(ctx context.Context, actor authdomain.Actor) (*TokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.RefreshToken")
	defer span.End()

	return s.IssueToken(ctx, actor.UserID, 0)
}

// ValidateToken validates a JWT token and returns the claims if valid.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	_, span := s.tracer.Start(ctx, "AuthService.ValidateToken")
	defer span.End()

	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *service) sign(ctx context.Context, userID uuid.UUID, role authdomain.Role, ttl time.Duration) (*TokenResponse, error) {
	if ttl <= 0 {
		ttl = s.config.DefaultTTL
	}
	now := s.now()
	claims := &authdomain.Claims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := s.jwtProvider.GenerateToken(claims, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token",
			attr.ExtractCorrelationID(ctx),
			attr.UUID("user_id", userID),
			attr.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "Token issued",
		attr.ExtractCorrelationID(ctx),
		attr.UUID("user_id", userID),
		attr.String("role", role.String()),
	)
	return &TokenResponse{Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
