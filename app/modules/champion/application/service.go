package championservice

import (
	"context"
	"log/slog"

	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ChampionService implements the Service interface.
type ChampionService struct {
	repo      championdb.Repository
	accounts  AccountReader
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operations.Runner
}

var _ Service = (*ChampionService)(nil)

// NewChampionService creates a new ChampionService.
func NewChampionService(
	repo championdb.Repository,
	accounts AccountReader,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ChampionService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	return &ChampionService{
		repo:      repo,
		accounts:  accounts,
		publisher: publisher,
		logger:    logger,
		runner:    operations.NewRunner("ChampionService", logger, m, tracer, db),
	}
}

func (s *ChampionService) publish(ctx context.Context, topic string, payload any) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

func toChampionView(c *championdb.Champion) championdomain.Champion {
	return championdomain.Champion{
		ID:        c.ID,
		Name:      c.Name,
		Class:     c.Class,
		Alias:     c.Alias,
		ImageURL:  c.ImageURL,
		SevenStar: c.SevenStar,
	}
}

func toEntryView(e *championdb.ChampionUser) championdomain.RosterEntry {
	view := championdomain.RosterEntry{
		ID:            e.ID,
		GameAccountID: e.GameAccountID,
		Stars:         e.Stars,
		Rank:          e.Rank,
		Signature:     e.Signature,
		Rarity:        e.Rarity(),
	}
	if e.Champion != nil {
		view.Champion = toChampionView(e.Champion)
	} else {
		view.Champion.ID = e.ChampionID
	}
	return view
}
