package alliancedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for alliances and their officers.
// Membership itself lives on game_accounts and is written through the user
// repository.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get*/Lock* methods)
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - ErrDuplicate: a unique constraint rejected an insert
type Repository interface {
	CreateAlliance(ctx context.Context, db bun.IDB, alliance *Alliance) error
	GetAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (*Alliance, error)
	LockAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (*Alliance, error)
	ListAlliances(ctx context.Context, db bun.IDB) ([]*AllianceWithCount, error)
	ListAlliancesByIDs(ctx context.Context, db bun.IDB, allianceIDs []uuid.UUID) ([]*AllianceWithCount, error)
	UpdateAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID, name, tag string) error
	DeleteAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) error

	ListOfficerIDs(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]uuid.UUID, error)
	AddOfficer(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) error
	RemoveOfficer(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) error
	DeleteOfficers(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error)
}
