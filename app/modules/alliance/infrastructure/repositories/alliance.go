package alliancedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/database"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new alliance repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateAlliance(ctx context.Context, db bun.IDB, alliance *Alliance) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(alliance).Returning("*").Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create alliance: %w", err)
	}
	return nil
}

// GetAlliance loads the alliance with its owner account.
func (r *Impl) GetAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (*Alliance, error) {
	db = r.resolveDB(db)
	alliance := new(Alliance)
	err := db.NewSelect().
		Model(alliance).
		Relation("Owner").
		Where("a.id = ?", allianceID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alliance: %w", err)
	}
	return alliance, nil
}

// LockAlliance reads the alliance row with FOR UPDATE. Every mutation of an
// alliance, its membership or its defense takes this lock first, so they run one
// at a time per alliance.
func (r *Impl) LockAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (*Alliance, error) {
	db = r.resolveDB(db)
	alliance := new(Alliance)
	err := db.NewSelect().
		Model(alliance).
		Where("a.id = ?", allianceID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock alliance: %w", err)
	}
	return alliance, nil
}

func (r *Impl) listAlliances(ctx context.Context, db bun.IDB, allianceIDs []uuid.UUID) ([]*AllianceWithCount, error) {
	db = r.resolveDB(db)
	var alliances []*AllianceWithCount
	memberCount := db.NewSelect().
		Model((*userdb.GameAccount)(nil)).
		ColumnExpr("count(*)").
		Where("ga.alliance_id = a.id")
	q := db.NewSelect().
		Model(&alliances).
		ColumnExpr("a.*").
		ColumnExpr("(?) AS member_count", memberCount).
		Relation("Owner").
		OrderExpr("lower(a.name) ASC")
	if allianceIDs != nil {
		q = q.Where("a.id IN (?)", bun.In(allianceIDs))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list alliances: %w", err)
	}
	return alliances, nil
}

// ListAlliances returns every alliance ordered by name.
func (r *Impl) ListAlliances(ctx context.Context, db bun.IDB) ([]*AllianceWithCount, error) {
	return r.listAlliances(ctx, db, nil)
}

func (r *Impl) ListAlliancesByIDs(ctx context.Context, db bun.IDB, allianceIDs []uuid.UUID) ([]*AllianceWithCount, error) {
	if len(allianceIDs) == 0 {
		return []*AllianceWithCount{}, nil
	}
	return r.listAlliances(ctx, db, allianceIDs)
}

func (r *Impl) UpdateAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID, name, tag string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Alliance)(nil)).
		Set("name = ?", name).
		Set("tag = ?", tag).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", allianceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update alliance: %w", err)
	}
	return requireRowsAffected(res)
}

func (r *Impl) DeleteAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Alliance)(nil)).
		Where("id = ?", allianceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete alliance: %w", err)
	}
	return requireRowsAffected(res)
}

// --- Officers ---

func (r *Impl) ListOfficerIDs(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]uuid.UUID, error) {
	db = r.resolveDB(db)
	var ids []uuid.UUID
	err := db.NewSelect().
		Model((*AllianceOfficer)(nil)).
		Column("ao.game_account_id").
		Where("ao.alliance_id = ?", allianceID).
		OrderExpr("ao.created_at ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list officers: %w", err)
	}
	return ids, nil
}

func (r *Impl) AddOfficer(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) error {
	db = r.resolveDB(db)
	officer := &AllianceOfficer{AllianceID: allianceID, GameAccountID: accountID}
	if _, err := db.NewInsert().Model(officer).Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add officer: %w", err)
	}
	return nil
}

func (r *Impl) RemoveOfficer(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*AllianceOfficer)(nil)).
		Where("alliance_id = ?", allianceID).
		Where("game_account_id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove officer: %w", err)
	}
	return requireRowsAffected(res)
}

func (r *Impl) DeleteOfficers(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*AllianceOfficer)(nil)).
		Where("alliance_id = ?", allianceID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete officers: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
