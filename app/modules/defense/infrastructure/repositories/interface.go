package defensedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for defense placements.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get*/Find* methods)
//   - ErrNoRowsAffected: DELETE matched no rows
//   - ErrDuplicate: a unique constraint rejected an insert
type Repository interface {
	GetPlacement(ctx context.Context, db bun.IDB, placementID uuid.UUID) (*DefensePlacement, error)
	GetPlacementAtNode(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup, node int) (*DefensePlacement, error)
	FindPlacementOfEntry(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int, championUserID uuid.UUID) (*DefensePlacement, error)
	ListPlacements(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) ([]*DefensePlacement, error)
	CountByAccount(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int, accountID uuid.UUID) (int, error)
	CountsByAccount(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) (map[uuid.UUID]int, error)

	CreatePlacement(ctx context.Context, db bun.IDB, placement *DefensePlacement) error
	DeletePlacement(ctx context.Context, db bun.IDB, placementID uuid.UUID) error
	ClearBattlegroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) (int, error)
	ReleasePlacements(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) (int, error)
}
