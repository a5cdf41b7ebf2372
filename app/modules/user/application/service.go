package userservice

import (
	"context"
	"log/slog"

	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "UserService"

// UserService implements the Service interface.
type UserService struct {
	repo      userdb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operations.Runner
}

var _ Service = (*UserService)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	return &UserService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		runner:    operations.NewRunner(serviceName, logger, m, tracer, db),
	}
}

// publish sends an event once the operation has committed. Failures are logged only.
func (s *UserService) publish(ctx context.Context, topic string, payload any) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

func toUserView(u *userdb.User) *userdomain.User {
	return &userdomain.User{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		Role:      u.Role,
		Disabled:  !u.Active(),
		CreatedAt: u.CreatedAt,
	}
}

func toAccountView(a *userdb.GameAccount) *userdomain.GameAccount {
	return &userdomain.GameAccount{
		ID:            a.ID,
		UserID:        a.UserID,
		Pseudo:        a.Pseudo,
		IsPrimary:     a.IsPrimary,
		AllianceID:    a.AllianceID,
		AllianceGroup: a.AllianceGroup,
	}
}
