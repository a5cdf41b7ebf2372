package defenseservice

import (
	"context"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	defensedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service places, removes and lists defenders on the battlegroup maps.
type Service interface {
	PlaceDefender(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup, node int, input PlaceInput) (*defensedomain.Placement, error)
	RemoveDefender(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup, node int) error
	ClearDefense(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) (int, error)

	GetDefense(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) ([]defensedomain.Placement, error)
	AvailableChampions(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) ([]defensedomain.AvailableChampion, error)
	BGMembersWithCounts(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) ([]defensedomain.MemberLoad, error)
}

// PlaceInput names the roster entry to place and the account it belongs to.
// PlacedByID picks which of the actor's accounts is recorded as the placer; nil
// uses the actor's strongest account in the alliance.
type PlaceInput struct {
	RosterEntryID uuid.UUID
	GameAccountID uuid.UUID
	PlacedByID    *uuid.UUID
}

// StandingResolver loads the actor's role in an alliance.
// *allianceservice.Authority satisfies it.
type StandingResolver interface {
	Resolve(ctx context.Context, db bun.IDB, allianceID, userID uuid.UUID, lock bool) (*allianceservice.Standing, error)
}

// RosterReader is the part of the champion repository placements read.
type RosterReader interface {
	GetEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) (*championdb.ChampionUser, error)
	ListEntriesByAccounts(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*championdb.ChampionUser, error)
}

// AccountReader resolves the account a roster entry belongs to.
type AccountReader interface {
	GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error)
}
