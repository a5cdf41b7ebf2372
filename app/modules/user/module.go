package user

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	userservice "github.com/Black-And-White-Club/alliance-bot/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the user module.
type Module struct {
	repo     userdb.Repository
	service  userservice.Service
	handlers userhandlers.Handlers
}

// NewModule wires the user repository, service and HTTP handlers.
func NewModule(ctx context.Context, obs *observability.Observability, publisher eventbus.Publisher, db *bun.DB) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing user module")

	repo := userdb.NewRepository(db)
	service := userservice.NewUserService(repo, publisher, logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		repo:     repo,
		service:  service,
		handlers: userhandlers.NewUserHandlers(service, logger),
	}
}

// RegisterRoutes mounts the module's routes on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	userhandlers.MountMe(r, m.handlers)
	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleAdmin))
		userhandlers.MountAdmin(r, m.handlers)
	})
}

// Service returns the user service for use by other modules.
func (m *Module) Service() userservice.Service {
	return m.service
}

// Repository returns the user repository for use by other modules.
func (m *Module) Repository() userdb.Repository {
	return m.repo
}
