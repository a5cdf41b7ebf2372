package championservice

import (
	"context"

	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Champion Repo
// ------------------------

type FakeChampionRepo struct {
	trace []string

	CreateChampionFunc        func(ctx context.Context, db bun.IDB, champion *championdb.Champion) error
	GetChampionFunc           func(ctx context.Context, db bun.IDB, championID uuid.UUID) (*championdb.Champion, error)
	ListChampionsFunc         func(ctx context.Context, db bun.IDB, search string) ([]*championdb.Champion, error)
	CreateEntryFunc           func(ctx context.Context, db bun.IDB, entry *championdb.ChampionUser) error
	GetEntryFunc              func(ctx context.Context, db bun.IDB, entryID uuid.UUID) (*championdb.ChampionUser, error)
	ListEntriesByAccountFunc  func(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*championdb.ChampionUser, error)
	ListEntriesByAccountsFunc func(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*championdb.ChampionUser, error)
	UpdateEntryFunc           func(ctx context.Context, db bun.IDB, entryID uuid.UUID, fields championdb.EntryUpdateFields) error
	DeleteEntryFunc           func(ctx context.Context, db bun.IDB, entryID uuid.UUID) error
}

func NewFakeChampionRepo() *FakeChampionRepo {
	return &FakeChampionRepo{trace: []string{}}
}

func (f *FakeChampionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeChampionRepo) CreateChampion(ctx context.Context, db bun.IDB, champion *championdb.Champion) error {
	f.record("CreateChampion")
	if f.CreateChampionFunc != nil {
		return f.CreateChampionFunc(ctx, db, champion)
	}
	champion.ID = uuid.New()
	return nil
}

func (f *FakeChampionRepo) GetChampion(ctx context.Context, db bun.IDB, championID uuid.UUID) (*championdb.Champion, error) {
	f.record("GetChampion")
	if f.GetChampionFunc != nil {
		return f.GetChampionFunc(ctx, db, championID)
	}
	return nil, championdb.ErrNotFound
}

func (f *FakeChampionRepo) ListChampions(ctx context.Context, db bun.IDB, search string) ([]*championdb.Champion, error) {
	f.record("ListChampions")
	if f.ListChampionsFunc != nil {
		return f.ListChampionsFunc(ctx, db, search)
	}
	return nil, nil
}

func (f *FakeChampionRepo) CreateEntry(ctx context.Context, db bun.IDB, entry *championdb.ChampionUser) error {
	f.record("CreateEntry")
	if f.CreateEntryFunc != nil {
		return f.CreateEntryFunc(ctx, db, entry)
	}
	entry.ID = uuid.New()
	return nil
}

func (f *FakeChampionRepo) GetEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) (*championdb.ChampionUser, error) {
	f.record("GetEntry")
	if f.GetEntryFunc != nil {
		return f.GetEntryFunc(ctx, db, entryID)
	}
	return nil, championdb.ErrNotFound
}

func (f *FakeChampionRepo) ListEntriesByAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*championdb.ChampionUser, error) {
	f.record("ListEntriesByAccount")
	if f.ListEntriesByAccountFunc != nil {
		return f.ListEntriesByAccountFunc(ctx, db, accountID)
	}
	return nil, nil
}

func (f *FakeChampionRepo) ListEntriesByAccounts(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*championdb.ChampionUser, error) {
	f.record("ListEntriesByAccounts")
	if f.ListEntriesByAccountsFunc != nil {
		return f.ListEntriesByAccountsFunc(ctx, db, accountIDs)
	}
	return nil, nil
}

func (f *FakeChampionRepo) UpdateEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID, fields championdb.EntryUpdateFields) error {
	f.record("UpdateEntry")
	if f.UpdateEntryFunc != nil {
		return f.UpdateEntryFunc(ctx, db, entryID, fields)
	}
	return nil
}

func (f *FakeChampionRepo) DeleteEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) error {
	f.record("DeleteEntry")
	if f.DeleteEntryFunc != nil {
		return f.DeleteEntryFunc(ctx, db, entryID)
	}
	return nil
}

func (f *FakeChampionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ championdb.Repository = (*FakeChampionRepo)(nil)

// ------------------------
// Fake Account Reader
// ------------------------

// fakeAccounts serves game accounts from a map.
type fakeAccounts map[uuid.UUID]*userdb.GameAccount

func (f fakeAccounts) GetGameAccount(_ context.Context, _ bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error) {
	if a, ok := f[accountID]; ok {
		return a, nil
	}
	return nil, userdb.ErrNotFound
}
