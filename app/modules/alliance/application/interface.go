package allianceservice

import (
	"context"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service manages alliances, their membership, officers and battlegroups.
type Service interface {
	// Lifecycle
	CreateAlliance(ctx context.Context, actor authdomain.Actor, ownerAccountID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error)
	UpdateAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error)
	DeleteAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) error
	ListAlliances(ctx context.Context) ([]alliancedomain.Summary, error)
	ListMyAlliances(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Summary, error)
	GetAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) (*alliancedomain.Alliance, error)

	// Membership
	AddMember(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error)
	RemoveMember(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error
	LeaveAlliance(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error
	SetMemberGroup(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID, group *int) (*alliancedomain.Member, error)

	// Officers
	AddOfficer(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error)
	RemoveOfficer(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error

	// Selection lists
	EligibleOwners(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Candidate, error)
	EligibleOfficers(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) ([]alliancedomain.Candidate, error)
	EligibleMembers(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, search string) ([]alliancedomain.Candidate, error)
}

// MemberStore is the part of the user directory alliances read and write.
// userdb.Repository satisfies it.
type MemberStore interface {
	GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error)
	ListGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*userdb.GameAccount, error)
	ListGameAccountIDsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]uuid.UUID, error)
	ListGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]*userdb.GameAccount, error)
	CountGameAccountsInGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int, excludeAccountID uuid.UUID) (int, error)
	ListUnaffiliatedGameAccounts(ctx context.Context, db bun.IDB, search string, limit int) ([]*userdb.GameAccount, error)
	SetAllianceMembership(ctx context.Context, db bun.IDB, accountID uuid.UUID, allianceID *uuid.UUID) error
	SetAllianceGroup(ctx context.Context, db bun.IDB, accountID uuid.UUID, group *int) error
	ClearAllianceMembership(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error)
}

// PlacementReleaser drops an account's defense placements in an alliance. It runs
// inside the membership change's transaction.
type PlacementReleaser interface {
	ReleasePlacements(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) (int, error)
}

type noopReleaser struct{}

func (noopReleaser) ReleasePlacements(context.Context, bun.IDB, uuid.UUID, uuid.UUID) (int, error) {
	return 0, nil
}
