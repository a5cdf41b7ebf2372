package allianceservice

import (
	"context"
	"log/slog"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// eligibleMembersLimit caps the unaffiliated accounts returned by one search.
const eligibleMembersLimit = 50

// AllianceService implements the Service interface.
type AllianceService struct {
	repo       alliancedb.Repository
	members    MemberStore
	authority  *Authority
	placements PlacementReleaser
	publisher  eventbus.Publisher
	logger     *slog.Logger
	runner     *operations.Runner
}

var _ Service = (*AllianceService)(nil)

// NewAllianceService creates a new AllianceService. placements may be nil when
// no defense engine is wired.
func NewAllianceService(
	repo alliancedb.Repository,
	members MemberStore,
	placements PlacementReleaser,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AllianceService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	if placements == nil {
		placements = noopReleaser{}
	}
	return &AllianceService{
		repo:       repo,
		members:    members,
		authority:  NewAuthority(repo, members),
		placements: placements,
		publisher:  publisher,
		logger:     logger,
		runner:     operations.NewRunner("AllianceService", logger, m, tracer, db),
	}
}

// Authority exposes the standing resolver for other modules.
func (s *AllianceService) Authority() *Authority {
	return s.authority
}

// publish sends an alliance-scoped event after commit. Failures are logged only.
func (s *AllianceService) publish(ctx context.Context, topic string, allianceID uuid.UUID, payload any) {
	if err := eventbus.PublishWithAllianceScope(ctx, s.publisher, topic, allianceID.String(), payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.UUID("alliance_id", allianceID),
			attr.Error(err),
		)
	}
}

func toMember(a *userdb.GameAccount, h alliancedomain.Hierarchy) alliancedomain.Member {
	return alliancedomain.Member{
		AccountID: a.ID,
		UserID:    a.UserID,
		Pseudo:    a.Pseudo,
		Group:     a.AllianceGroup,
		IsOwner:   h.IsOwner(a.ID),
		IsOfficer: h.IsOfficer(a.ID),
	}
}

func toCandidate(a *userdb.GameAccount) alliancedomain.Candidate {
	return alliancedomain.Candidate{AccountID: a.ID, UserID: a.UserID, Pseudo: a.Pseudo}
}

// toAllianceView resolves owner, members and officers from a standing.
func toAllianceView(st *Standing) *alliancedomain.Alliance {
	view := &alliancedomain.Alliance{
		ID:          st.Alliance.ID,
		Name:        st.Alliance.Name,
		Tag:         st.Alliance.Tag,
		Members:     make([]alliancedomain.Member, 0, len(st.Members)),
		Officers:    make([]alliancedomain.Member, 0, len(st.Hierarchy.OfficerIDs)),
		MemberCount: len(st.Members),
		MyRole:      st.Role,
		CreatedAt:   st.Alliance.CreatedAt,
	}
	for _, m := range st.Members {
		member := toMember(m, st.Hierarchy)
		view.Members = append(view.Members, member)
		if member.IsOwner {
			view.Owner = member
		}
	}
	// Officers keep the order they were appointed in.
	for _, id := range st.Hierarchy.OfficerIDs {
		if m := st.Member(id); m != nil {
			view.Officers = append(view.Officers, toMember(m, st.Hierarchy))
		}
	}
	return view
}

func toSummary(a *alliancedb.AllianceWithCount) alliancedomain.Summary {
	summary := alliancedomain.Summary{
		ID:          a.ID,
		Name:        a.Name,
		Tag:         a.Tag,
		OwnerID:     a.OwnerID,
		MemberCount: a.MemberCount,
		CreatedAt:   a.CreatedAt,
	}
	if a.Owner != nil {
		summary.OwnerPseudo = a.Owner.Pseudo
	}
	return summary
}
