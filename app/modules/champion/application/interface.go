package championservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is the champion catalog and the game accounts' rosters.
type Service interface {
	ListChampions(ctx context.Context, search string) ([]championdomain.Champion, error)
	GetChampion(ctx context.Context, championID uuid.UUID) (*championdomain.Champion, error)
	CreateChampion(ctx context.Context, actor authdomain.Actor, input ChampionInput) (*championdomain.Champion, error)

	GetRoster(ctx context.Context, accountID uuid.UUID) ([]championdomain.RosterEntry, error)
	AddRosterEntry(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, input RosterInput) (*championdomain.RosterEntry, error)
	UpgradeRosterEntry(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID, input LevelInput) (*championdomain.RosterEntry, error)
	RemoveRosterEntry(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID) error
}

// AccountReader resolves the game accounts rosters belong to.
type AccountReader interface {
	GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error)
}

// ChampionInput describes a new catalog entry.
type ChampionInput struct {
	Name      string
	Class     string
	Alias     *string
	ImageURL  *string
	SevenStar bool
}

// LevelInput is the level part of a roster entry.
type LevelInput struct {
	Stars     int
	Rank      int
	Signature int
}

// RosterInput describes a new roster entry.
type RosterInput struct {
	ChampionID uuid.UUID
	LevelInput
}
