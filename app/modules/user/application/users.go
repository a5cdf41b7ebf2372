package userservice

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterUser creates a platform user. Login and email must be unique.
func (s *UserService) RegisterUser(ctx context.Context, login, email string, role authdomain.Role) (*userdomain.User, error) {
	user, err := operations.Execute(s.runner, ctx, "RegisterUser", login, func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
		return s.registerUserLogic(ctx, db, login, email, role)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userdomain.UserRegisteredV1, userdomain.UserEventPayload{UserID: user.ID, Login: user.Login})
	return user, nil
}

func (s *UserService) registerUserLogic(ctx context.Context, db bun.IDB, login, email string, role authdomain.Role) (results.OperationResult[*userdomain.User, error], error) {
	login = strings.TrimSpace(login)
	email = strings.TrimSpace(email)

	if login == "" || len(login) > 64 {
		return operations.Fail[*userdomain.User](apperrors.BadRequest("login must be between 1 and 64 characters"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return operations.Fail[*userdomain.User](apperrors.BadRequest("email is not a valid address"))
	}
	if role == "" {
		role = authdomain.RoleUser
	}
	if !role.IsValid() {
		return operations.Fail[*userdomain.User](apperrors.BadRequest("unknown role %q", role))
	}

	user := &userdb.User{
		Login: login,
		Email: strings.ToLower(email),
		Role:  role.String(),
	}
	if err := s.repo.CreateUser(ctx, db, user); err != nil {
		if errors.Is(err, userdb.ErrDuplicate) {
			return operations.Fail[*userdomain.User](apperrors.Conflict("login or email is already registered"))
		}
		return operations.Abort[*userdomain.User](fmt.Errorf("failed to register user: %w", err))
	}

	return operations.Succeed(toUserView(user))
}

// ValidateActor fails NotFound for unknown users and Forbidden for disabled or
// deleted ones.
func (s *UserService) ValidateActor(ctx context.Context, userID uuid.UUID) error {
	_, err := operations.Execute(s.runner, ctx, "ValidateActor", userID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		user, err := s.repo.GetUserByID(ctx, db, userID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return operations.Fail[bool](apperrors.NotFound("user not found"))
			}
			return operations.Abort[bool](fmt.Errorf("failed to get user: %w", err))
		}
		if !user.Active() {
			return operations.Fail[bool](apperrors.Forbidden("user is disabled"))
		}
		return operations.Succeed(true)
	})
	return err
}

// DisableUser soft-disables a user. Admin only; admins cannot disable themselves.
func (s *UserService) DisableUser(ctx context.Context, actor authdomain.Actor, userID uuid.UUID) (*userdomain.User, error) {
	user, err := operations.Execute(s.runner, ctx, "DisableUser", userID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
		return s.disableUserLogic(ctx, db, actor, userID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userdomain.UserDisabledV1, userdomain.UserEventPayload{UserID: user.ID, Login: user.Login})
	return user, nil
}

func (s *UserService) disableUserLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, userID uuid.UUID) (results.OperationResult[*userdomain.User, error], error) {
	if !actor.IsAdmin() {
		return operations.Fail[*userdomain.User](apperrors.Forbidden("only admins can disable users"))
	}
	if actor.UserID == userID {
		return operations.Fail[*userdomain.User](apperrors.BadRequest("admins cannot disable themselves"))
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateUser(ctx, db, userID, &userdb.UserUpdateFields{DisabledAt: &now}); err != nil {
		if errors.Is(err, userdb.ErrNoRowsAffected) {
			return operations.Fail[*userdomain.User](apperrors.NotFound("user not found"))
		}
		return operations.Abort[*userdomain.User](fmt.Errorf("failed to disable user: %w", err))
	}

	user, err := s.repo.GetUserByID(ctx, db, userID)
	if err != nil {
		return operations.Abort[*userdomain.User](fmt.Errorf("failed to reload user: %w", err))
	}
	return operations.Succeed(toUserView(user))
}
