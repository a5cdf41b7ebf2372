package allianceservice

import (
	"context"
	"slices"
	"strings"
	"sync"

	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake World
// ------------------------

// fakeWorld is an in-memory alliance directory. It satisfies both
// alliancedb.Repository and MemberStore so the authority rules run against real
// state. Errs injects an error into the named step.
type fakeWorld struct {
	trace []string

	alliances map[uuid.UUID]*alliancedb.Alliance
	officers  map[uuid.UUID][]uuid.UUID
	accounts  map[uuid.UUID]*userdb.GameAccount

	Errs map[string]error
}

var (
	_ alliancedb.Repository = (*fakeWorld)(nil)
	_ MemberStore           = (*fakeWorld)(nil)
)

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		trace:     []string{},
		alliances: map[uuid.UUID]*alliancedb.Alliance{},
		officers:  map[uuid.UUID][]uuid.UUID{},
		accounts:  map[uuid.UUID]*userdb.GameAccount{},
		Errs:      map[string]error{},
	}
}

func (f *fakeWorld) record(step string) error {
	f.trace = append(f.trace, step)
	return f.Errs[step]
}

// --- fixtures ---

func (f *fakeWorld) addAccount(userID uuid.UUID, pseudo string) *userdb.GameAccount {
	a := &userdb.GameAccount{ID: uuid.New(), UserID: userID, Pseudo: pseudo}
	f.accounts[a.ID] = a
	return a
}

func (f *fakeWorld) addAlliance(owner *userdb.GameAccount, name string) *alliancedb.Alliance {
	a := &alliancedb.Alliance{ID: uuid.New(), Name: name, Tag: "TAG", OwnerID: owner.ID}
	f.alliances[a.ID] = a
	owner.AllianceID = &a.ID
	return a
}

func (f *fakeWorld) join(allianceID uuid.UUID, account *userdb.GameAccount, group *int) {
	account.AllianceID = &allianceID
	account.AllianceGroup = group
}

func (f *fakeWorld) promote(allianceID, accountID uuid.UUID) {
	f.officers[allianceID] = append(f.officers[allianceID], accountID)
}

func (f *fakeWorld) resetTrace() {
	f.trace = []string{}
}

func copyAccount(a *userdb.GameAccount) *userdb.GameAccount {
	cp := *a
	return &cp
}

func (f *fakeWorld) sortedAccounts(keep func(*userdb.GameAccount) bool) []*userdb.GameAccount {
	var out []*userdb.GameAccount
	for _, a := range f.accounts {
		if keep(a) {
			out = append(out, copyAccount(a))
		}
	}
	slices.SortFunc(out, func(a, b *userdb.GameAccount) int {
		return strings.Compare(a.Pseudo, b.Pseudo)
	})
	return out
}

func (f *fakeWorld) withCount(a *alliancedb.Alliance) *alliancedb.AllianceWithCount {
	count := 0
	for _, acc := range f.accounts {
		if acc.InAlliance(a.ID) {
			count++
		}
	}
	out := &alliancedb.AllianceWithCount{Alliance: *a, MemberCount: count}
	if owner, ok := f.accounts[a.OwnerID]; ok {
		out.Owner = copyAccount(owner)
	}
	return out
}

// --- alliancedb.Repository ---

func (f *fakeWorld) CreateAlliance(ctx context.Context, db bun.IDB, alliance *alliancedb.Alliance) error {
	if err := f.record("CreateAlliance"); err != nil {
		return err
	}
	alliance.ID = uuid.New()
	cp := *alliance
	f.alliances[alliance.ID] = &cp
	return nil
}

func (f *fakeWorld) GetAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (*alliancedb.Alliance, error) {
	if err := f.record("GetAlliance"); err != nil {
		return nil, err
	}
	a, ok := f.alliances[allianceID]
	if !ok {
		return nil, alliancedb.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeWorld) LockAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (*alliancedb.Alliance, error) {
	if err := f.record("LockAlliance"); err != nil {
		return nil, err
	}
	a, ok := f.alliances[allianceID]
	if !ok {
		return nil, alliancedb.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeWorld) ListAlliances(ctx context.Context, db bun.IDB) ([]*alliancedb.AllianceWithCount, error) {
	if err := f.record("ListAlliances"); err != nil {
		return nil, err
	}
	var out []*alliancedb.AllianceWithCount
	for _, a := range f.alliances {
		out = append(out, f.withCount(a))
	}
	slices.SortFunc(out, func(a, b *alliancedb.AllianceWithCount) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

func (f *fakeWorld) ListAlliancesByIDs(ctx context.Context, db bun.IDB, allianceIDs []uuid.UUID) ([]*alliancedb.AllianceWithCount, error) {
	if err := f.record("ListAlliancesByIDs"); err != nil {
		return nil, err
	}
	var out []*alliancedb.AllianceWithCount
	for _, id := range allianceIDs {
		if a, ok := f.alliances[id]; ok {
			out = append(out, f.withCount(a))
		}
	}
	slices.SortFunc(out, func(a, b *alliancedb.AllianceWithCount) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

func (f *fakeWorld) UpdateAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID, name, tag string) error {
	if err := f.record("UpdateAlliance"); err != nil {
		return err
	}
	a, ok := f.alliances[allianceID]
	if !ok {
		return alliancedb.ErrNoRowsAffected
	}
	a.Name, a.Tag = name, tag
	return nil
}

func (f *fakeWorld) DeleteAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) error {
	if err := f.record("DeleteAlliance"); err != nil {
		return err
	}
	if _, ok := f.alliances[allianceID]; !ok {
		return alliancedb.ErrNoRowsAffected
	}
	delete(f.alliances, allianceID)
	return nil
}

func (f *fakeWorld) ListOfficerIDs(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]uuid.UUID, error) {
	if err := f.record("ListOfficerIDs"); err != nil {
		return nil, err
	}
	return slices.Clone(f.officers[allianceID]), nil
}

func (f *fakeWorld) AddOfficer(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) error {
	if err := f.record("AddOfficer"); err != nil {
		return err
	}
	if slices.Contains(f.officers[allianceID], accountID) {
		return alliancedb.ErrDuplicate
	}
	f.officers[allianceID] = append(f.officers[allianceID], accountID)
	return nil
}

func (f *fakeWorld) RemoveOfficer(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) error {
	if err := f.record("RemoveOfficer"); err != nil {
		return err
	}
	ids := f.officers[allianceID]
	i := slices.Index(ids, accountID)
	if i < 0 {
		return alliancedb.ErrNoRowsAffected
	}
	f.officers[allianceID] = slices.Delete(ids, i, i+1)
	return nil
}

func (f *fakeWorld) DeleteOfficers(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	if err := f.record("DeleteOfficers"); err != nil {
		return 0, err
	}
	n := len(f.officers[allianceID])
	delete(f.officers, allianceID)
	return n, nil
}

// --- MemberStore ---

func (f *fakeWorld) GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error) {
	if err := f.record("GetGameAccount"); err != nil {
		return nil, err
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	return copyAccount(a), nil
}

func (f *fakeWorld) ListGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*userdb.GameAccount, error) {
	if err := f.record("ListGameAccountsByUser"); err != nil {
		return nil, err
	}
	return f.sortedAccounts(func(a *userdb.GameAccount) bool { return a.UserID == userID }), nil
}

func (f *fakeWorld) ListGameAccountIDsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]uuid.UUID, error) {
	if err := f.record("ListGameAccountIDsByUser"); err != nil {
		return nil, err
	}
	return userdb.AccountIDs(f.sortedAccounts(func(a *userdb.GameAccount) bool { return a.UserID == userID })), nil
}

func (f *fakeWorld) ListGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]*userdb.GameAccount, error) {
	if err := f.record("ListGameAccountsByAlliance"); err != nil {
		return nil, err
	}
	return f.sortedAccounts(func(a *userdb.GameAccount) bool { return a.InAlliance(allianceID) }), nil
}

func (f *fakeWorld) CountGameAccountsInGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int, excludeAccountID uuid.UUID) (int, error) {
	if err := f.record("CountGameAccountsInGroup"); err != nil {
		return 0, err
	}
	count := 0
	for _, a := range f.accounts {
		if a.ID != excludeAccountID && a.InGroup(allianceID, group) {
			count++
		}
	}
	return count, nil
}

func (f *fakeWorld) ListUnaffiliatedGameAccounts(ctx context.Context, db bun.IDB, search string, limit int) ([]*userdb.GameAccount, error) {
	if err := f.record("ListUnaffiliatedGameAccounts"); err != nil {
		return nil, err
	}
	out := f.sortedAccounts(func(a *userdb.GameAccount) bool {
		return a.AllianceID == nil && strings.Contains(strings.ToLower(a.Pseudo), strings.ToLower(search))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWorld) SetAllianceMembership(ctx context.Context, db bun.IDB, accountID uuid.UUID, allianceID *uuid.UUID) error {
	if err := f.record("SetAllianceMembership"); err != nil {
		return err
	}
	a, ok := f.accounts[accountID]
	if !ok || (allianceID != nil && a.AllianceID != nil) {
		return userdb.ErrNoRowsAffected
	}
	a.AllianceID = allianceID
	a.AllianceGroup = nil
	return nil
}

func (f *fakeWorld) SetAllianceGroup(ctx context.Context, db bun.IDB, accountID uuid.UUID, group *int) error {
	if err := f.record("SetAllianceGroup"); err != nil {
		return err
	}
	a, ok := f.accounts[accountID]
	if !ok || a.AllianceID == nil {
		return userdb.ErrNoRowsAffected
	}
	a.AllianceGroup = group
	return nil
}

func (f *fakeWorld) ClearAllianceMembership(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	if err := f.record("ClearAllianceMembership"); err != nil {
		return 0, err
	}
	n := 0
	for _, a := range f.accounts {
		if a.InAlliance(allianceID) {
			a.AllianceID = nil
			a.AllianceGroup = nil
			n++
		}
	}
	return n, nil
}

// ------------------------
// Fake Releaser
// ------------------------

type fakeReleaser struct {
	calls []uuid.UUID
	count int
	err   error
}

func (r *fakeReleaser) ReleasePlacements(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) (int, error) {
	r.calls = append(r.calls, accountID)
	return r.count, r.err
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.topics)
}
