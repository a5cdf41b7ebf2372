package userservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
	"github.com/google/uuid"
)

// Service is the user directory: platform users and the game accounts they own.
type Service interface {
	// Users
	RegisterUser(ctx context.Context, login, email string, role authdomain.Role) (*userdomain.User, error)
	ValidateActor(ctx context.Context, userID uuid.UUID) error
	DisableUser(ctx context.Context, actor authdomain.Actor, userID uuid.UUID) (*userdomain.User, error)

	// Game accounts
	CreateGameAccount(ctx context.Context, actor authdomain.Actor, pseudo string) (*userdomain.GameAccount, error)
	ListMyGameAccounts(ctx context.Context, actor authdomain.Actor) ([]userdomain.GameAccount, error)
	UpdateGameAccount(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, pseudo string) (*userdomain.GameAccount, error)
	SetPrimaryGameAccount(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID) (*userdomain.GameAccount, error)
}
