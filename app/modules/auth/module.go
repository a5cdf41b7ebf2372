package auth

import (
	"context"
	"net/http"

	authservice "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/alliance-bot/config"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the auth module: token issuing and the request gate.
type Module struct {
	provider authjwt.Provider
	service  authservice.Service
	handlers *authhandlers.AuthHandlers
	obs      *observability.Observability
}

// NewModule wires the JWT provider, token service and handlers. users is the
// user directory's repository.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	users authservice.UserReader,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	provider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer)
	service := authservice.NewService(provider, users, authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL}, logger, obs.Tracer)

	return &Module{
		provider: provider,
		service:  service,
		handlers: authhandlers.NewAuthHandlers(service, logger),
		obs:      obs,
	}
}

// Authenticate returns the bearer-token middleware. validator rejects users
// disabled after their token was issued and may be nil.
func (m *Module) Authenticate(validator authhandlers.ActorValidator) func(http.Handler) http.Handler {
	return authhandlers.Authenticate(m.provider, validator, m.obs.Logger)
}

// RegisterRoutes mounts the module's routes on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.Mount(r)
}

// Service returns the token service.
func (m *Module) Service() authservice.Service {
	return m.service
}
