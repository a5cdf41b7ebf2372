package alliance

import (
	"context"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	alliancehandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/handlers"
	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the alliance module.
type Module struct {
	repo     alliancedb.Repository
	service  *allianceservice.AllianceService
	handlers *alliancehandlers.AllianceHandlers
}

// NewModule wires the alliance repository, service and HTTP handlers. members is
// the user directory's repository; placements drops defense placements when
// membership changes and may be nil.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	publisher eventbus.Publisher,
	members allianceservice.MemberStore,
	placements allianceservice.PlacementReleaser,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing alliance module")

	repo := alliancedb.NewRepository(db)
	service := allianceservice.NewAllianceService(repo, members, placements, publisher, logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		repo:     repo,
		service:  service,
		handlers: alliancehandlers.NewAllianceHandlers(service, logger),
	}
}

// RegisterRoutes mounts the module's routes on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.Mount(r)
}

// Service returns the alliance service.
func (m *Module) Service() allianceservice.Service {
	return m.service
}

// Authority returns the role resolver the defense module shares.
func (m *Module) Authority() *allianceservice.Authority {
	return m.service.Authority()
}

// Repository returns the alliance repository for use by other modules.
func (m *Module) Repository() alliancedb.Repository {
	return m.repo
}
