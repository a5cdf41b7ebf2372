package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const maxPseudoLength = 50

// CreateGameAccount adds a game account for the actor. The first account a user
// creates becomes their primary one.
func (s *UserService) CreateGameAccount(ctx context.Context, actor authdomain.Actor, pseudo string) (*userdomain.GameAccount, error) {
	account, err := operations.Execute(s.runner, ctx, "CreateGameAccount", actor.UserID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.GameAccount, error], error) {
		return s.createGameAccountLogic(ctx, db, actor, pseudo)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userdomain.GameAccountCreatedV1, userdomain.GameAccountCreatedPayload{
		UserID:    account.UserID,
		AccountID: account.ID,
		Pseudo:    account.Pseudo,
	})
	return account, nil
}

func (s *UserService) createGameAccountLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, pseudo string) (results.OperationResult[*userdomain.GameAccount, error], error) {
	pseudo, failure := normalizePseudo(pseudo)
	if failure != nil {
		return operations.Fail[*userdomain.GameAccount](failure)
	}

	if _, err := s.repo.LockUser(ctx, db, actor.UserID); err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return operations.Fail[*userdomain.GameAccount](apperrors.NotFound("user not found"))
		}
		return operations.Abort[*userdomain.GameAccount](fmt.Errorf("failed to lock user: %w", err))
	}

	count, err := s.repo.CountGameAccountsByUser(ctx, db, actor.UserID)
	if err != nil {
		return operations.Abort[*userdomain.GameAccount](fmt.Errorf("failed to count game accounts: %w", err))
	}
	if count >= userdomain.MaxGameAccountsPerUser {
		return operations.Fail[*userdomain.GameAccount](apperrors.BadRequest("a user can own at most %d game accounts", userdomain.MaxGameAccountsPerUser))
	}

	account := &userdb.GameAccount{
		UserID:    actor.UserID,
		Pseudo:    pseudo,
		IsPrimary: count == 0,
	}
	if err := s.repo.CreateGameAccount(ctx, db, account); err != nil {
		return operations.Abort[*userdomain.GameAccount](fmt.Errorf("failed to create game account: %w", err))
	}

	return operations.Succeed(toAccountView(account))
}

// ListMyGameAccounts lists the actor's game accounts, primary first.
func (s *UserService) ListMyGameAccounts(ctx context.Context, actor authdomain.Actor) ([]userdomain.GameAccount, error) {
	return operations.Execute(s.runner, ctx, "ListMyGameAccounts", actor.UserID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]userdomain.GameAccount, error], error) {
		accounts, err := s.repo.ListGameAccountsByUser(ctx, db, actor.UserID)
		if err != nil {
			return operations.Abort[[]userdomain.GameAccount](fmt.Errorf("failed to list game accounts: %w", err))
		}
		out := make([]userdomain.GameAccount, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, *toAccountView(a))
		}
		return operations.Succeed(out)
	})
}

// UpdateGameAccount renames one of the actor's game accounts.
func (s *UserService) UpdateGameAccount(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, pseudo string) (*userdomain.GameAccount, error) {
	return operations.Execute(s.runner, ctx, "UpdateGameAccount", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.GameAccount, error], error) {
		pseudo, failure := normalizePseudo(pseudo)
		if failure != nil {
			return operations.Fail[*userdomain.GameAccount](failure)
		}

		account, failure, err := s.ownedAccount(ctx, db, actor, accountID)
		if err != nil {
			return operations.Abort[*userdomain.GameAccount](err)
		}
		if failure != nil {
			return operations.Fail[*userdomain.GameAccount](failure)
		}

		if err := s.repo.UpdateGameAccountPseudo(ctx, db, accountID, pseudo); err != nil {
			return operations.Abort[*userdomain.GameAccount](fmt.Errorf("failed to update game account: %w", err))
		}
		account.Pseudo = pseudo
		return operations.Succeed(toAccountView(account))
	})
}

// SetPrimaryGameAccount makes accountID the actor's primary account.
func (s *UserService) SetPrimaryGameAccount(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID) (*userdomain.GameAccount, error) {
	return operations.Execute(s.runner, ctx, "SetPrimaryGameAccount", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.GameAccount, error], error) {
		account, failure, err := s.ownedAccount(ctx, db, actor, accountID)
		if err != nil {
			return operations.Abort[*userdomain.GameAccount](err)
		}
		if failure != nil {
			return operations.Fail[*userdomain.GameAccount](failure)
		}

		if err := s.repo.SetPrimaryGameAccount(ctx, db, actor.UserID, accountID); err != nil {
			return operations.Abort[*userdomain.GameAccount](fmt.Errorf("failed to set primary game account: %w", err))
		}
		account.IsPrimary = true
		return operations.Succeed(toAccountView(account))
	})
}

// ownedAccount loads accountID and checks that actor owns it.
func (s *UserService) ownedAccount(ctx context.Context, db bun.IDB, actor authdomain.Actor, accountID uuid.UUID) (*userdb.GameAccount, error, error) {
	account, err := s.repo.GetGameAccount(ctx, db, accountID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, apperrors.NotFound("game account not found"), nil
		}
		return nil, nil, fmt.Errorf("failed to get game account: %w", err)
	}
	if account.UserID != actor.UserID {
		return nil, apperrors.Forbidden("game account belongs to another user"), nil
	}
	return account, nil, nil
}

func normalizePseudo(pseudo string) (string, error) {
	pseudo = strings.TrimSpace(pseudo)
	if pseudo == "" || utf8.RuneCountInString(pseudo) > maxPseudoLength {
		return "", apperrors.BadRequest("pseudo must be between 1 and %d characters", maxPseudoLength)
	}
	return pseudo, nil
}
