package userhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userservice "github.com/Black-And-White-Club/alliance-bot/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
	"github.com/google/uuid"
)

// FakeService is a programmable userservice.Service.
type FakeService struct {
	RegisterUserFunc          func(ctx context.Context, login, email string, role authdomain.Role) (*userdomain.User, error)
	ValidateActorFunc         func(ctx context.Context, userID uuid.UUID) error
	DisableUserFunc           func(ctx context.Context, actor authdomain.Actor, userID uuid.UUID) (*userdomain.User, error)
	CreateGameAccountFunc     func(ctx context.Context, actor authdomain.Actor, pseudo string) (*userdomain.GameAccount, error)
	ListMyGameAccountsFunc    func(ctx context.Context, actor authdomain.Actor) ([]userdomain.GameAccount, error)
	UpdateGameAccountFunc     func(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, pseudo string) (*userdomain.GameAccount, error)
	SetPrimaryGameAccountFunc func(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID) (*userdomain.GameAccount, error)
}

func (f *FakeService) RegisterUser(ctx context.Context, login, email string, role authdomain.Role) (*userdomain.User, error) {
	if f.RegisterUserFunc != nil {
		return f.RegisterUserFunc(ctx, login, email, role)
	}
	return &userdomain.User{ID: uuid.New(), Login: login, Email: email, Role: role.String()}, nil
}

func (f *FakeService) ValidateActor(ctx context.Context, userID uuid.UUID) error {
	if f.ValidateActorFunc != nil {
		return f.ValidateActorFunc(ctx, userID)
	}
	return nil
}

func (f *FakeService) DisableUser(ctx context.Context, actor authdomain.Actor, userID uuid.UUID) (*userdomain.User, error) {
	if f.DisableUserFunc != nil {
		return f.DisableUserFunc(ctx, actor, userID)
	}
	return &userdomain.User{ID: userID, Disabled: true}, nil
}

func (f *FakeService) CreateGameAccount(ctx context.Context, actor authdomain.Actor, pseudo string) (*userdomain.GameAccount, error) {
	if f.CreateGameAccountFunc != nil {
		return f.CreateGameAccountFunc(ctx, actor, pseudo)
	}
	return &userdomain.GameAccount{ID: uuid.New(), UserID: actor.UserID, Pseudo: pseudo}, nil
}

func (f *FakeService) ListMyGameAccounts(ctx context.Context, actor authdomain.Actor) ([]userdomain.GameAccount, error) {
	if f.ListMyGameAccountsFunc != nil {
		return f.ListMyGameAccountsFunc(ctx, actor)
	}
	return []userdomain.GameAccount{}, nil
}

func (f *FakeService) UpdateGameAccount(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, pseudo string) (*userdomain.GameAccount, error) {
	if f.UpdateGameAccountFunc != nil {
		return f.UpdateGameAccountFunc(ctx, actor, accountID, pseudo)
	}
	return &userdomain.GameAccount{ID: accountID, UserID: actor.UserID, Pseudo: pseudo}, nil
}

func (f *FakeService) SetPrimaryGameAccount(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID) (*userdomain.GameAccount, error) {
	if f.SetPrimaryGameAccountFunc != nil {
		return f.SetPrimaryGameAccountFunc(ctx, actor, accountID)
	}
	return &userdomain.GameAccount{ID: accountID, UserID: actor.UserID, IsPrimary: true}, nil
}

var _ userservice.Service = (*FakeService)(nil)
