package defense

import (
	"context"

	defenseservice "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/application"
	defensehandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/handlers"
	defensedb "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the defense placement module.
type Module struct {
	repo     defensedb.Repository
	service  *defenseservice.DefenseService
	handlers *defensehandlers.DefenseHandlers
}

// NewModule wires the defense service and HTTP handlers. repo is shared with
// the alliance module, which releases placements through it; a nil repo gets a
// fresh one. standings is the alliance authority, rosters and accounts the
// champion and user repositories.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	publisher eventbus.Publisher,
	repo defensedb.Repository,
	standings defenseservice.StandingResolver,
	rosters defenseservice.RosterReader,
	accounts defenseservice.AccountReader,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing defense module")

	if repo == nil {
		repo = defensedb.NewRepository(db)
	}
	service := defenseservice.NewDefenseService(repo, standings, rosters, accounts, publisher, logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		repo:     repo,
		service:  service,
		handlers: defensehandlers.NewDefenseHandlers(service, logger),
	}
}

// RegisterRoutes mounts the module's routes on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.Mount(r)
}

// Service returns the defense service.
func (m *Module) Service() defenseservice.Service {
	return m.service
}

// Repository returns the placement repository.
func (m *Module) Repository() defensedb.Repository {
	return m.repo
}
