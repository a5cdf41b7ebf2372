package defenseservice

import (
	"context"
	"log/slog"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	defensedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/domain"
	defensedb "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// DefenseService implements the Service interface.
type DefenseService struct {
	repo      defensedb.Repository
	standings StandingResolver
	rosters   RosterReader
	accounts  AccountReader
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operations.Runner
}

var _ Service = (*DefenseService)(nil)

// NewDefenseService creates a new DefenseService.
func NewDefenseService(
	repo defensedb.Repository,
	standings StandingResolver,
	rosters RosterReader,
	accounts AccountReader,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *DefenseService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	return &DefenseService{
		repo:      repo,
		standings: standings,
		rosters:   rosters,
		accounts:  accounts,
		publisher: publisher,
		logger:    logger,
		runner:    operations.NewRunner("DefenseService", logger, m, tracer, db),
	}
}

func (s *DefenseService) publish(ctx context.Context, topic string, allianceID uuid.UUID, payload any) {
	if err := eventbus.PublishWithAllianceScope(ctx, s.publisher, topic, allianceID.String(), payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.UUID("alliance_id", allianceID),
			attr.Error(err),
		)
	}
}

func validateBattlegroup(bg int) error {
	if !defensedomain.ValidBattlegroup(bg) {
		return apperrors.BadRequest("battlegroup must be between %d and %d", alliancedomain.MinGroup, alliancedomain.MaxGroup)
	}
	return nil
}

func validateNode(node int) error {
	if !defensedomain.ValidNode(node) {
		return apperrors.BadRequest("node must be between 1 and %d", defensedomain.NodeCount)
	}
	return nil
}

// requireMember fails Forbidden for actors with no account in the alliance.
func requireMember(st *allianceservice.Standing) error {
	if st.Role == alliancedomain.RoleNone {
		return apperrors.Forbidden("you are not a member of this alliance")
	}
	return nil
}

func toPlacementView(p *defensedb.DefensePlacement) defensedomain.Placement {
	view := defensedomain.Placement{
		ID:            p.ID,
		AllianceID:    p.AllianceID,
		Battlegroup:   p.Battlegroup,
		Node:          p.NodeNumber,
		RosterEntryID: p.ChampionUserID,
		GameAccountID: p.GameAccountID,
		PlacedByID:    p.PlacedByID,
		CreatedAt:     p.CreatedAt,
	}
	if e := p.ChampionUser; e != nil {
		view.Stars = e.Stars
		view.Rank = e.Rank
		view.Rarity = e.Rarity()
		if c := e.Champion; c != nil {
			view.Champion = defensedomain.PlacedChampion{ID: c.ID, Name: c.Name, Class: c.Class, ImageURL: c.ImageURL}
		}
	}
	if p.GameAccount != nil {
		view.Pseudo = p.GameAccount.Pseudo
	}
	if p.PlacedBy != nil {
		view.PlacedByPseudo = p.PlacedBy.Pseudo
	}
	return view
}
