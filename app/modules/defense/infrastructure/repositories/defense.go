package defensedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/alliance-bot/pkg/database"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new defense repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// joined loads everything a placement view shows.
func joined(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("ChampionUser").
		Relation("ChampionUser.Champion").
		Relation("GameAccount").
		Relation("PlacedBy")
}

// GetPlacement loads a placement with its champion and accounts.
func (r *Impl) GetPlacement(ctx context.Context, db bun.IDB, placementID uuid.UUID) (*DefensePlacement, error) {
	db = r.resolveDB(db)
	placement := new(DefensePlacement)
	err := joined(db.NewSelect().Model(placement)).
		Where("dp.id = ?", placementID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get placement: %w", err)
	}
	return placement, nil
}

// GetPlacementAtNode returns the occupant of a node.
func (r *Impl) GetPlacementAtNode(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup, node int) (*DefensePlacement, error) {
	db = r.resolveDB(db)
	placement := new(DefensePlacement)
	err := db.NewSelect().
		Model(placement).
		Where("dp.alliance_id = ?", allianceID).
		Where("dp.battlegroup = ?", battlegroup).
		Where("dp.node_number = ?", node).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get node occupant: %w", err)
	}
	return placement, nil
}

// FindPlacementOfEntry returns where a roster entry sits in a battlegroup.
func (r *Impl) FindPlacementOfEntry(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int, championUserID uuid.UUID) (*DefensePlacement, error) {
	db = r.resolveDB(db)
	placement := new(DefensePlacement)
	err := db.NewSelect().
		Model(placement).
		Where("dp.alliance_id = ?", allianceID).
		Where("dp.battlegroup = ?", battlegroup).
		Where("dp.champion_user_id = ?", championUserID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find placement of roster entry: %w", err)
	}
	return placement, nil
}

// ListPlacements returns a battlegroup's placements ordered by node.
func (r *Impl) ListPlacements(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) ([]*DefensePlacement, error) {
	db = r.resolveDB(db)
	var placements []*DefensePlacement
	err := joined(db.NewSelect().Model(&placements)).
		Where("dp.alliance_id = ?", allianceID).
		Where("dp.battlegroup = ?", battlegroup).
		OrderExpr("dp.node_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}
	return placements, nil
}

func (r *Impl) CountByAccount(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int, accountID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*DefensePlacement)(nil)).
		Where("dp.alliance_id = ?", allianceID).
		Where("dp.battlegroup = ?", battlegroup).
		Where("dp.game_account_id = ?", accountID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count placements: %w", err)
	}
	return count, nil
}

// CountsByAccount returns the placement count of every account with at least
// one placement in the battlegroup.
func (r *Impl) CountsByAccount(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) (map[uuid.UUID]int, error) {
	db = r.resolveDB(db)
	var rows []struct {
		GameAccountID uuid.UUID `bun:"game_account_id"`
		Count         int       `bun:"count"`
	}
	err := db.NewSelect().
		Model((*DefensePlacement)(nil)).
		ColumnExpr("dp.game_account_id").
		ColumnExpr("COUNT(*) AS count").
		Where("dp.alliance_id = ?", allianceID).
		Where("dp.battlegroup = ?", battlegroup).
		GroupExpr("dp.game_account_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count placements by account: %w", err)
	}
	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.GameAccountID] = row.Count
	}
	return counts, nil
}

func (r *Impl) CreatePlacement(ctx context.Context, db bun.IDB, placement *DefensePlacement) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(placement).Returning("*").Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create placement: %w", err)
	}
	return nil
}

func (r *Impl) DeletePlacement(ctx context.Context, db bun.IDB, placementID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*DefensePlacement)(nil)).
		Where("id = ?", placementID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete placement: %w", err)
	}
	return requireRowsAffected(res)
}

// ClearBattlegroup deletes every placement of the battlegroup and returns how
// many there were.
func (r *Impl) ClearBattlegroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*DefensePlacement)(nil)).
		Where("alliance_id = ?", allianceID).
		Where("battlegroup = ?", battlegroup).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear battlegroup: %w", err)
	}
	return rowsAffected(res)
}

// ReleasePlacements deletes every placement an account holds in the alliance,
// across all battlegroups.
func (r *Impl) ReleasePlacements(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*DefensePlacement)(nil)).
		Where("alliance_id = ?", allianceID).
		Where("game_account_id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to release placements: %w", err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(n), nil
}

func requireRowsAffected(res sql.Result) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
