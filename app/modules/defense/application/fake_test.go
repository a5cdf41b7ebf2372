package defenseservice

import (
	"context"
	"slices"
	"sync"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	defensedb "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake World
// ------------------------

// fakeWorld holds one alliance, its accounts, their rosters and the defense
// maps. It stands in for every dependency of DefenseService. Errs injects an
// error into the named step.
type fakeWorld struct {
	trace []string

	alliance   *alliancedb.Alliance
	officerIDs []uuid.UUID
	accounts   map[uuid.UUID]*userdb.GameAccount
	champions  map[string]*championdb.Champion
	entries    map[uuid.UUID]*championdb.ChampionUser
	placements map[uuid.UUID]*defensedb.DefensePlacement

	Errs map[string]error
}

var (
	_ defensedb.Repository = (*fakeWorld)(nil)
	_ StandingResolver     = (*fakeWorld)(nil)
	_ RosterReader         = (*fakeWorld)(nil)
	_ AccountReader        = (*fakeWorld)(nil)
)

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		trace:      []string{},
		accounts:   map[uuid.UUID]*userdb.GameAccount{},
		champions:  map[string]*championdb.Champion{},
		entries:    map[uuid.UUID]*championdb.ChampionUser{},
		placements: map[uuid.UUID]*defensedb.DefensePlacement{},
		Errs:       map[string]error{},
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

func (f *fakeWorld) join(account *userdb.GameAccount, group *int) {
	account.AllianceID = &f.alliance.ID
	account.AllianceGroup = group
}

func (f *fakeWorld) addEntry(account *userdb.GameAccount, champion string, stars, rank int) *championdb.ChampionUser {
	c, ok := f.champions[champion]
	if !ok {
		c = &championdb.Champion{ID: uuid.New(), Name: champion, Class: "science"}
		f.champions[champion] = c
	}
	e := &championdb.ChampionUser{
		ID:            uuid.New(),
		GameAccountID: account.ID,
		ChampionID:    c.ID,
		Stars:         stars,
		Rank:          rank,
		Champion:      c,
	}
	f.entries[e.ID] = e
	return e
}

func (f *fakeWorld) place(bg, node int, entry *championdb.ChampionUser) *defensedb.DefensePlacement {
	p := &defensedb.DefensePlacement{
		ID:             uuid.New(),
		AllianceID:     f.alliance.ID,
		Battlegroup:    bg,
		NodeNumber:     node,
		ChampionUserID: entry.ID,
		GameAccountID:  entry.GameAccountID,
	}
	f.placements[p.ID] = p
	return p
}

func (f *fakeWorld) at(bg, node int) *defensedb.DefensePlacement {
	for _, p := range f.placements {
		if p.Battlegroup == bg && p.NodeNumber == node {
			return p
		}
	}
	return nil
}

func (f *fakeWorld) resetTrace() {
	f.trace = []string{}
}

// --- StandingResolver ---

func (f *fakeWorld) Resolve(ctx context.Context, db bun.IDB, allianceID, userID uuid.UUID, lock bool) (*allianceservice.Standing, error) {
	if err := f.record("Resolve"); err != nil {
		return nil, err
	}
	if f.alliance == nil || f.alliance.ID != allianceID {
		return nil, apperrors.NotFound("alliance not found")
	}
	var members []*userdb.GameAccount
	var actorIDs []uuid.UUID
	for _, a := range f.accounts {
		if a.InAlliance(allianceID) {
			members = append(members, a)
		}
		if a.UserID == userID {
			actorIDs = append(actorIDs, a.ID)
		}
	}
	slices.SortFunc(members, func(a, b *userdb.GameAccount) int {
		if a.Pseudo < b.Pseudo {
			return -1
		}
		if a.Pseudo > b.Pseudo {
			return 1
		}
		return 0
	})
	h := alliancedomain.Hierarchy{
		AllianceID: allianceID,
		OwnerID:    f.alliance.OwnerID,
		OfficerIDs: f.officerIDs,
		MemberIDs:  userdb.AccountIDs(members),
	}
	return &allianceservice.Standing{
		Alliance:        f.alliance,
		Hierarchy:       h,
		Members:         members,
		ActorAccountIDs: actorIDs,
		Role:            alliancedomain.RoleOf(h, actorIDs),
	}, nil
}

// --- RosterReader / AccountReader ---

func (f *fakeWorld) GetEntry(ctx context.Context, db bun.IDB, entryID uuid.UUID) (*championdb.ChampionUser, error) {
	if err := f.record("GetEntry"); err != nil {
		return nil, err
	}
	e, ok := f.entries[entryID]
	if !ok {
		return nil, championdb.ErrNotFound
	}
	return e, nil
}

func (f *fakeWorld) ListEntriesByAccounts(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*championdb.ChampionUser, error) {
	if err := f.record("ListEntriesByAccounts"); err != nil {
		return nil, err
	}
	var out []*championdb.ChampionUser
	for _, e := range f.entries {
		if slices.Contains(accountIDs, e.GameAccountID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWorld) GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error) {
	if err := f.record("GetGameAccount"); err != nil {
		return nil, err
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// --- defensedb.Repository ---

func (f *fakeWorld) joined(p *defensedb.DefensePlacement) *defensedb.DefensePlacement {
	cp := *p
	cp.ChampionUser = f.entries[p.ChampionUserID]
	cp.GameAccount = f.accounts[p.GameAccountID]
	if p.PlacedByID != nil {
		cp.PlacedBy = f.accounts[*p.PlacedByID]
	}
	return &cp
}

func (f *fakeWorld) GetPlacement(ctx context.Context, db bun.IDB, placementID uuid.UUID) (*defensedb.DefensePlacement, error) {
	if err := f.record("GetPlacement"); err != nil {
		return nil, err
	}
	p, ok := f.placements[placementID]
	if !ok {
		return nil, defensedb.ErrNotFound
	}
	return f.joined(p), nil
}

func (f *fakeWorld) GetPlacementAtNode(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup, node int) (*defensedb.DefensePlacement, error) {
	if err := f.record("GetPlacementAtNode"); err != nil {
		return nil, err
	}
	if p := f.at(battlegroup, node); p != nil && p.AllianceID == allianceID {
		return f.joined(p), nil
	}
	return nil, defensedb.ErrNotFound
}

func (f *fakeWorld) FindPlacementOfEntry(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int, championUserID uuid.UUID) (*defensedb.DefensePlacement, error) {
	if err := f.record("FindPlacementOfEntry"); err != nil {
		return nil, err
	}
	for _, p := range f.placements {
		if p.AllianceID == allianceID && p.Battlegroup == battlegroup && p.ChampionUserID == championUserID {
			return f.joined(p), nil
		}
	}
	return nil, defensedb.ErrNotFound
}

func (f *fakeWorld) ListPlacements(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) ([]*defensedb.DefensePlacement, error) {
	if err := f.record("ListPlacements"); err != nil {
		return nil, err
	}
	var out []*defensedb.DefensePlacement
	for _, p := range f.placements {
		if p.AllianceID == allianceID && p.Battlegroup == battlegroup {
			out = append(out, f.joined(p))
		}
	}
	slices.SortFunc(out, func(a, b *defensedb.DefensePlacement) int { return a.NodeNumber - b.NodeNumber })
	return out, nil
}

func (f *fakeWorld) CountByAccount(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int, accountID uuid.UUID) (int, error) {
	if err := f.record("CountByAccount"); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range f.placements {
		if p.AllianceID == allianceID && p.Battlegroup == battlegroup && p.GameAccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (f *fakeWorld) CountsByAccount(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) (map[uuid.UUID]int, error) {
	if err := f.record("CountsByAccount"); err != nil {
		return nil, err
	}
	out := map[uuid.UUID]int{}
	for _, p := range f.placements {
		if p.AllianceID == allianceID && p.Battlegroup == battlegroup {
			out[p.GameAccountID]++
		}
	}
	return out, nil
}

func (f *fakeWorld) CreatePlacement(ctx context.Context, db bun.IDB, placement *defensedb.DefensePlacement) error {
	if err := f.record("CreatePlacement"); err != nil {
		return err
	}
	if placement.ID == uuid.Nil {
		placement.ID = uuid.New()
	}
	cp := *placement
	f.placements[cp.ID] = &cp
	return nil
}

func (f *fakeWorld) DeletePlacement(ctx context.Context, db bun.IDB, placementID uuid.UUID) error {
	if err := f.record("DeletePlacement"); err != nil {
		return err
	}
	if _, ok := f.placements[placementID]; !ok {
		return defensedb.ErrNoRowsAffected
	}
	delete(f.placements, placementID)
	return nil
}

func (f *fakeWorld) ClearBattlegroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, battlegroup int) (int, error) {
	if err := f.record("ClearBattlegroup"); err != nil {
		return 0, err
	}
	n := 0
	for id, p := range f.placements {
		if p.AllianceID == allianceID && p.Battlegroup == battlegroup {
			delete(f.placements, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeWorld) ReleasePlacements(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) (int, error) {
	if err := f.record("ReleasePlacements"); err != nil {
		return 0, err
	}
	n := 0
	for id, p := range f.placements {
		if p.AllianceID == allianceID && p.GameAccountID == accountID {
			delete(f.placements, id)
			n++
		}
	}
	return n, nil
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
