package champion

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	championservice "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/application"
	championhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/handlers"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the champion catalog and roster module.
type Module struct {
	repo     championdb.Repository
	service  championservice.Service
	handlers *championhandlers.ChampionHandlers
}

// NewModule wires the champion repository, service and HTTP handlers. accounts
// is the user directory's repository.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	publisher eventbus.Publisher,
	accounts championservice.AccountReader,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing champion module")

	repo := championdb.NewRepository(db)
	service := championservice.NewChampionService(repo, accounts, publisher, logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		repo:     repo,
		service:  service,
		handlers: championhandlers.NewChampionHandlers(service, logger),
	}
}

// RegisterRoutes mounts the module's routes on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.Mount(r, authhandlers.RequireRole(authdomain.RoleAdmin))
}

// Service returns the champion service.
func (m *Module) Service() championservice.Service {
	return m.service
}

// Repository returns the champion repository for use by other modules.
func (m *Module) Repository() championdb.Repository {
	return m.repo
}
