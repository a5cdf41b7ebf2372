package championdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for the champion catalog and rosters.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - ErrDuplicate: a unique constraint rejected an insert or update
type Repository interface {
	// Catalog
	CreateChampion(ctx context.Context, db bun.IDB, champion *Champion) error
	GetChampion(ctx context.Context, db bun.IDB, championID uuid.UUID) (*Champion, error)
	ListChampions(ctx context.Context, db bun.IDB, search string) ([]*Champion, error)

	// Roster entries. Get and List load the Champion relation.
	CreateEntry(ctx context.Context, db bun.IDB, entry *ChampionUser) error
	GetEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) (*ChampionUser, error)
	ListEntriesByAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*ChampionUser, error)
	ListEntriesByAccounts(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*ChampionUser, error)
	UpdateEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID, fields EntryUpdateFields) error
	DeleteEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) error
}
