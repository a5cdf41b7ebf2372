package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for users and their game accounts.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - ErrDuplicate: a unique constraint rejected an insert or update
//   - other errors: infrastructure failures
type Repository interface {
	// Users
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	GetUserByID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error)
	LockUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error)
	UpdateUser(ctx context.Context, db bun.IDB, userID uuid.UUID, updates *UserUpdateFields) error

	// Game accounts
	CreateGameAccount(ctx context.Context, db bun.IDB, account *GameAccount) error
	GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*GameAccount, error)
	GetGameAccountsByIDs(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*GameAccount, error)
	ListGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*GameAccount, error)
	ListGameAccountIDsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]uuid.UUID, error)
	CountGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (int, error)
	UpdateGameAccountPseudo(ctx context.Context, db bun.IDB, accountID uuid.UUID, pseudo string) error
	SetPrimaryGameAccount(ctx context.Context, db bun.IDB, userID, accountID uuid.UUID) error

	// Alliance membership columns
	ListGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]*GameAccount, error)
	ListGameAccountsByGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int) ([]*GameAccount, error)
	CountGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error)
	CountGameAccountsInGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int, excludeAccountID uuid.UUID) (int, error)
	ListUnaffiliatedGameAccounts(ctx context.Context, db bun.IDB, search string, limit int) ([]*GameAccount, error)
	SetAllianceMembership(ctx context.Context, db bun.IDB, accountID uuid.UUID, allianceID *uuid.UUID) error
	SetAllianceGroup(ctx context.Context, db bun.IDB, accountID uuid.UUID, group *int) error
	ClearAllianceMembership(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error)
}
