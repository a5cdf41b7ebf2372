package userservice

import (
	"context"
	"sync"

	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	CreateUserFunc                   func(ctx context.Context, db bun.IDB, user *userdb.User) error
	GetUserByIDFunc                  func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error)
	LockUserFunc                     func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error)
	UpdateUserFunc                   func(ctx context.Context, db bun.IDB, userID uuid.UUID, updates *userdb.UserUpdateFields) error
	CreateGameAccountFunc            func(ctx context.Context, db bun.IDB, account *userdb.GameAccount) error
	GetGameAccountFunc               func(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error)
	GetGameAccountsByIDsFunc         func(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*userdb.GameAccount, error)
	ListGameAccountsByUserFunc       func(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*userdb.GameAccount, error)
	ListGameAccountIDsByUserFunc     func(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]uuid.UUID, error)
	CountGameAccountsByUserFunc      func(ctx context.Context, db bun.IDB, userID uuid.UUID) (int, error)
	UpdateGameAccountPseudoFunc      func(ctx context.Context, db bun.IDB, accountID uuid.UUID, pseudo string) error
	SetPrimaryGameAccountFunc        func(ctx context.Context, db bun.IDB, userID, accountID uuid.UUID) error
	ListGameAccountsByAllianceFunc   func(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]*userdb.GameAccount, error)
	ListGameAccountsByGroupFunc      func(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int) ([]*userdb.GameAccount, error)
	CountGameAccountsByAllianceFunc  func(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error)
	CountGameAccountsInGroupFunc     func(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int, excludeAccountID uuid.UUID) (int, error)
	ListUnaffiliatedGameAccountsFunc func(ctx context.Context, db bun.IDB, search string, limit int) ([]*userdb.GameAccount, error)
	SetAllianceMembershipFunc        func(ctx context.Context, db bun.IDB, accountID uuid.UUID, allianceID *uuid.UUID) error
	SetAllianceGroupFunc             func(ctx context.Context, db bun.IDB, accountID uuid.UUID, group *int) error
	ClearAllianceMembershipFunc      func(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error)
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		trace: []string{},
	}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeUserRepo) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	user.ID = uuid.New()
	return nil
}

func (f *FakeUserRepo) GetUserByID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error) {
	f.record("GetUserByID")
	if f.GetUserByIDFunc != nil {
		return f.GetUserByIDFunc(ctx, db, userID)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) LockUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*userdb.User, error) {
	f.record("LockUser")
	if f.LockUserFunc != nil {
		return f.LockUserFunc(ctx, db, userID)
	}
	return &userdb.User{ID: userID}, nil
}

func (f *FakeUserRepo) UpdateUser(ctx context.Context, db bun.IDB, userID uuid.UUID, updates *userdb.UserUpdateFields) error {
	f.record("UpdateUser")
	if f.UpdateUserFunc != nil {
		return f.UpdateUserFunc(ctx, db, userID, updates)
	}
	return nil
}

func (f *FakeUserRepo) CreateGameAccount(ctx context.Context, db bun.IDB, account *userdb.GameAccount) error {
	f.record("CreateGameAccount")
	if f.CreateGameAccountFunc != nil {
		return f.CreateGameAccountFunc(ctx, db, account)
	}
	account.ID = uuid.New()
	return nil
}

func (f *FakeUserRepo) GetGameAccount(ctx context.Context, db bun.IDB, accountID uuid.UUID) (*userdb.GameAccount, error) {
	f.record("GetGameAccount")
	if f.GetGameAccountFunc != nil {
		return f.GetGameAccountFunc(ctx, db, accountID)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) GetGameAccountsByIDs(ctx context.Context, db bun.IDB, accountIDs []uuid.UUID) ([]*userdb.GameAccount, error) {
	f.record("GetGameAccountsByIDs")
	if f.GetGameAccountsByIDsFunc != nil {
		return f.GetGameAccountsByIDsFunc(ctx, db, accountIDs)
	}
	return nil, nil
}

func (f *FakeUserRepo) ListGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]*userdb.GameAccount, error) {
	f.record("ListGameAccountsByUser")
	if f.ListGameAccountsByUserFunc != nil {
		return f.ListGameAccountsByUserFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeUserRepo) ListGameAccountIDsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]uuid.UUID, error) {
	f.record("ListGameAccountIDsByUser")
	if f.ListGameAccountIDsByUserFunc != nil {
		return f.ListGameAccountIDsByUserFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeUserRepo) CountGameAccountsByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (int, error) {
	f.record("CountGameAccountsByUser")
	if f.CountGameAccountsByUserFunc != nil {
		return f.CountGameAccountsByUserFunc(ctx, db, userID)
	}
	return 0, nil
}

func (f *FakeUserRepo) UpdateGameAccountPseudo(ctx context.Context, db bun.IDB, accountID uuid.UUID, pseudo string) error {
	f.record("UpdateGameAccountPseudo")
	if f.UpdateGameAccountPseudoFunc != nil {
		return f.UpdateGameAccountPseudoFunc(ctx, db, accountID, pseudo)
	}
	return nil
}

func (f *FakeUserRepo) SetPrimaryGameAccount(ctx context.Context, db bun.IDB, userID, accountID uuid.UUID) error {
	f.record("SetPrimaryGameAccount")
	if f.SetPrimaryGameAccountFunc != nil {
		return f.SetPrimaryGameAccountFunc(ctx, db, userID, accountID)
	}
	return nil
}

func (f *FakeUserRepo) ListGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) ([]*userdb.GameAccount, error) {
	f.record("ListGameAccountsByAlliance")
	if f.ListGameAccountsByAllianceFunc != nil {
		return f.ListGameAccountsByAllianceFunc(ctx, db, allianceID)
	}
	return nil, nil
}

func (f *FakeUserRepo) ListGameAccountsByGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int) ([]*userdb.GameAccount, error) {
	f.record("ListGameAccountsByGroup")
	if f.ListGameAccountsByGroupFunc != nil {
		return f.ListGameAccountsByGroupFunc(ctx, db, allianceID, group)
	}
	return nil, nil
}

func (f *FakeUserRepo) CountGameAccountsByAlliance(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	f.record("CountGameAccountsByAlliance")
	if f.CountGameAccountsByAllianceFunc != nil {
		return f.CountGameAccountsByAllianceFunc(ctx, db, allianceID)
	}
	return 0, nil
}

func (f *FakeUserRepo) CountGameAccountsInGroup(ctx context.Context, db bun.IDB, allianceID uuid.UUID, group int, excludeAccountID uuid.UUID) (int, error) {
	f.record("CountGameAccountsInGroup")
	if f.CountGameAccountsInGroupFunc != nil {
		return f.CountGameAccountsInGroupFunc(ctx, db, allianceID, group, excludeAccountID)
	}
	return 0, nil
}

func (f *FakeUserRepo) ListUnaffiliatedGameAccounts(ctx context.Context, db bun.IDB, search string, limit int) ([]*userdb.GameAccount, error) {
	f.record("ListUnaffiliatedGameAccounts")
	if f.ListUnaffiliatedGameAccountsFunc != nil {
		return f.ListUnaffiliatedGameAccountsFunc(ctx, db, search, limit)
	}
	return nil, nil
}

func (f *FakeUserRepo) SetAllianceMembership(ctx context.Context, db bun.IDB, accountID uuid.UUID, allianceID *uuid.UUID) error {
	f.record("SetAllianceMembership")
	if f.SetAllianceMembershipFunc != nil {
		return f.SetAllianceMembershipFunc(ctx, db, accountID, allianceID)
	}
	return nil
}

func (f *FakeUserRepo) SetAllianceGroup(ctx context.Context, db bun.IDB, accountID uuid.UUID, group *int) error {
	f.record("SetAllianceGroup")
	if f.SetAllianceGroupFunc != nil {
		return f.SetAllianceGroupFunc(ctx, db, accountID, group)
	}
	return nil
}

func (f *FakeUserRepo) ClearAllianceMembership(ctx context.Context, db bun.IDB, allianceID uuid.UUID) (int, error) {
	f.record("ClearAllianceMembership")
	if f.ClearAllianceMembershipFunc != nil {
		return f.ClearAllianceMembershipFunc(ctx, db, allianceID)
	}
	return 0, nil
}

// --- Accessors for assertions ---

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ userdb.Repository = (*FakeUserRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	Err    error
}

func (p *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Topic)
	}
	return out
}
