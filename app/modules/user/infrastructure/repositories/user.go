package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/alliance-bot/pkg/database"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// --- Users ---

func (r *Impl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *Impl) GetUserByID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// LockUser reads the user row with FOR UPDATE, serializing concurrent writers on
// the same user's game accounts.
func (r *Impl) LockUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return user, nil
}

func (r *Impl) UpdateUser(ctx context.Context, db bun.IDB, userID uuid.UUID, updates *UserUpdateFields) error {
	if updates.IsEmpty() {
		return nil
	}
	db = r.resolveDB(db)

	q := db.NewUpdate().
		Model((*User)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID)
	if updates.Email != nil {
		q = q.Set("email = ?", *updates.Email)
	}
	if updates.Role != nil {
		q = q.Set("role = ?", *updates.Role)
	}
	if updates.DisabledAt != nil {
		q = q.Set("disabled_at = ?", *updates.DisabledAt)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowsAffected(res)
}

// --- Game accounts ---

func (r *Impl) CreateGameAccount(ctx context.Context, db bun.IDB, account *GameAccount) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(account).Returning("*").Exec(ctx); err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create game account: %w", err)
	}
	return nil
}

func (r *Impl) GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*GameAccount, error) {
	db = r.resolveDB(db)
	account := new(GameAccount)
	err := db.NewSelect().
		Model(account).
		Where("ga.id = ?", accountID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game account: %w", err)
	}
	return account, nil
}

func (r *Impl) GetGameAccountsByIDs(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*GameAccount, error) {
	if len(accountIDs) == 0 {
		return []*GameAccount{}, nil
	}
	db = r.resolveDB(db)
	var accounts []*GameAccount
	err := db.NewSelect().
		Model(&accounts).
		Where("ga.id IN (?)", bun.In(accountIDs)).
		OrderExpr("ga.pseudo ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game accounts by ids: %w", err)
	}
	return accounts, nil
}

func (r *Impl) ListGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*GameAccount, error) {
	db = r.resolveDB(db)
	var accounts []*GameAccount
	err := db.NewSelect().
		Model(&accounts).
		Where("ga.user_id = ?", userID).
		OrderExpr("ga.is_primary DESC, ga.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game accounts for user: %w", err)
	}
	return accounts, nil
}

func (r *Impl) ListGameAccountIDsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]uuid.UUID, error) {
	db = r.resolveDB(db)
	var ids []uuid.UUID
	err := db.NewSelect().
		Model((*GameAccount)(nil)).
		Column("ga.id").
		Where("ga.user_id = ?", userID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list game account ids for user: %w", err)
	}
	return ids, nil
}

func (r *Impl) CountGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*GameAccount)(nil)).
		Where("ga.user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count game accounts for user: %w", err)
	}
	return count, nil
}

func (r *Impl) UpdateGameAccountPseudo(ctx context.Context, db bun.IDB, accountID uuid.UUID, pseudo string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*GameAccount)(nil)).
		Set("pseudo = ?", pseudo).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game account pseudo: %w", err)
	}
	return requireRowsAffected(res)
}

// SetPrimaryGameAccount marks accountID as the user's only primary account.
func (r *Impl) SetPrimaryGameAccount(ctx context.Context, db bun.IDB, userID, accountID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*GameAccount)(nil)).
		Set("is_primary = (id = ?)", accountID).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set primary game account: %w", err)
	}
	return requireRowsAffected(res)
}

// --- Alliance membership ---

func (r *Impl) ListGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]*GameAccount, error) {
	db = r.resolveDB(db)
	var accounts []*GameAccount
	err := db.NewSelect().
		Model(&accounts).
		Where("ga.alliance_id = ?", allianceID).
		OrderExpr("ga.alliance_group ASC NULLS LAST, lower(ga.pseudo) ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alliance members: %w", err)
	}
	return accounts, nil
}

func (r *Impl) ListGameAccountsByGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int) ([]*GameAccount, error) {
	db = r.resolveDB(db)
	var accounts []*GameAccount
	err := db.NewSelect().
		Model(&accounts).
		Where("ga.alliance_id = ?", allianceID).
		Where("ga.alliance_group = ?", group).
		OrderExpr("lower(ga.pseudo) ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list battlegroup members: %w", err)
	}
	return accounts, nil
}

func (r *Impl) CountGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*GameAccount)(nil)).
		Where("ga.alliance_id = ?", allianceID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count alliance members: %w", err)
	}
	return count, nil
}

func (r *Impl) CountGameAccountsInGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int, excludeAccountID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*GameAccount)(nil)).
		Where("ga.alliance_id = ?", allianceID).
		Where("ga.alliance_group = ?", group).
		Where("ga.id <> ?", excludeAccountID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count battlegroup members: %w", err)
	}
	return count, nil
}

// ListUnaffiliatedGameAccounts returns accounts outside any alliance whose pseudo
// contains search (case-insensitive). An empty search matches everything.
func (r *Impl) ListUnaffiliatedGameAccounts(ctx context.Context, db bun.IDB, search string, limit int) ([]*GameAccount, error) {
	db = r.resolveDB(db)
	var accounts []*GameAccount
	q := db.NewSelect().
		Model(&accounts).
		Where("ga.alliance_id IS NULL").
		OrderExpr("lower(ga.pseudo) ASC").
		Limit(limit)
	if search != "" {
		q = q.Where("ga.pseudo ILIKE ?", "%"+database.EscapeLike(search)+"%")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list unaffiliated game accounts: %w", err)
	}
	return accounts, nil
}

// SetAllianceMembership sets alliance_id and always resets alliance_group. Joining
// (non-nil allianceID) only matches an account outside any alliance, so a
// concurrent join elsewhere surfaces as ErrNoRowsAffected.
func (r *Impl) SetAllianceMembership(ctx context.Context, db bun.IDB, accountID uuid.UUID, allianceID *uuid.UUID) error {
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*GameAccount)(nil)).
		Set("alliance_id = ?", allianceID).
		Set("alliance_group = NULL").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", accountID)
	if allianceID != nil {
		q = q.Where("alliance_id IS NULL")
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set alliance membership: %w", err)
	}
	return requireRowsAffected(res)
}

func (r *Impl) SetAllianceGroup(ctx context.Context, db bun.IDB, accountID uuid.UUID, group *int) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*GameAccount)(nil)).
		Set("alliance_group = ?", group).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", accountID).
		Where("alliance_id IS NOT NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set alliance group: %w", err)
	}
	return requireRowsAffected(res)
}

// ClearAllianceMembership detaches every member of allianceID and returns how many
// accounts were updated.
func (r *Impl) ClearAllianceMembership(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*GameAccount)(nil)).
		Set("alliance_id = NULL").
		Set("alliance_group = NULL").
		Set("updated_at = ?", time.Now()).
		Where("alliance_id = ?", allianceID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear alliance membership: %w", err)
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
