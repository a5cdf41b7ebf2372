package championdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/alliance-bot/pkg/database"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new champion repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// --- Catalog ---

func (r *Impl) CreateChampion(ctx context.Context, db bun.IDB, champion *Champion) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(champion).Returning("*").Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create champion: %w", err)
	}
	return nil
}

func (r *Impl) GetChampion(ctx context.Context, db bun.IDB, championID uuid.UUID) (*Champion, error) {
	db = r.resolveDB(db)
	champion := new(Champion)
	err := db.NewSelect().
		Model(champion).
		Where("c.id = ?", championID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get champion: %w", err)
	}
	return champion, nil
}

// ListChampions returns the catalog ordered by name. A non-empty search matches
// name or alias case-insensitively.
func (r *Impl) ListChampions(ctx context.Context, db bun.IDB, search string) ([]*Champion, error) {
	db = r.resolveDB(db)
	var champions []*Champion
	q := db.NewSelect().
		Model(&champions).
		OrderExpr("c.name ASC")
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + database.EscapeLike(search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("c.name ILIKE ?", pattern).WhereOr("c.alias ILIKE ?", pattern)
		})
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list champions: %w", err)
	}
	return champions, nil
}

// --- Roster entries ---

func (r *Impl) CreateEntry(ctx context.Context, db bun.IDB, entry *ChampionUser) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(entry).Returning("*").Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create roster entry: %w", err)
	}
	return nil
}

func (r *Impl) GetEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) (*ChampionUser, error) {
	db = r.resolveDB(db)
	entry := new(ChampionUser)
	err := db.NewSelect().
		Model(entry).
		Relation("Champion").
		Where("cu.id = ?", entryID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	return entry, nil
}

// ListEntriesByAccount returns an account's roster, strongest first, then by name.
func (r *Impl) ListEntriesByAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*ChampionUser, error) {
	db = r.resolveDB(db)
	var entries []*ChampionUser
	err := db.NewSelect().
		Model(&entries).
		Relation("Champion").
		Where("cu.game_account_id = ?", accountID).
		OrderExpr("cu.stars DESC, cu.rank DESC, champion.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return entries, nil
}

// ListEntriesByAccounts returns every roster entry of accountIDs with the
// Champion relation loaded. Order is unspecified.
func (r *Impl) ListEntriesByAccounts(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*ChampionUser, error) {
	if len(accountIDs) == 0 {
		return []*ChampionUser{}, nil
	}
	db = r.resolveDB(db)
	var entries []*ChampionUser
	err := db.NewSelect().
		Model(&entries).
		Relation("Champion").
		Where("cu.game_account_id IN (?)", bun.In(accountIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster entries: %w", err)
	}
	return entries, nil
}

func (r *Impl) UpdateEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID, fields EntryUpdateFields) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*ChampionUser)(nil)).
		Set("stars = ?", fields.Stars).
		Set("rank = ?", fields.Rank).
		Set("signature = ?", fields.Signature).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", entryID).
		Exec(ctx)
	if err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update roster entry: %w", err)
	}
	return requireRowsAffected(res)
}

// DeleteEntry removes a roster entry. Its defense placements go with it through
// the foreign key cascade.
func (r *Impl) DeleteEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*ChampionUser)(nil)).
		Where("id = ?", entryID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
