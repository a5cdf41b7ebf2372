package allianceservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	maxNameLength = 100
	maxTagLength  = 10
)

// normalizeIdentity trims name and tag and checks their lengths.
func normalizeIdentity(name, tag string) (string, string, error) {
	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxNameLength {
		return "", "", apperrors.BadRequest("name must be between 1 and %d characters", maxNameLength)
	}
	if n := utf8.RuneCountInString(tag); n == 0 || n > maxTagLength {
		return "", "", apperrors.BadRequest("tag must be between 1 and %d characters", maxTagLength)
	}
	return name, tag, nil
}

// CreateAlliance founds an alliance owned by one of the actor's unaffiliated
// accounts. The owner joins in the same transaction.
func (s *AllianceService) CreateAlliance(ctx context.Context, actor authdomain.Actor, ownerAccountID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error) {
	view, err := operations.Execute(s.runner, ctx, "CreateAlliance", ownerAccountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*alliancedomain.Alliance, error], error) {
		return s.createAllianceLogic(ctx, db, actor, ownerAccountID, name, tag)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, alliancedomain.AllianceCreatedV1, view.ID, alliancedomain.AlliancePayload{
		AllianceID: view.ID,
		Name:       view.Name,
		Tag:        view.Tag,
		OwnerID:    ownerAccountID,
		ActorID:    actor.UserID,
	})
	return view, nil
}

func (s *AllianceService) createAllianceLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, ownerAccountID uuid.UUID, name, tag string) (results.OperationResult[*alliancedomain.Alliance, error], error) {
	name, tag, err := normalizeIdentity(name, tag)
	if err != nil {
		return operations.Fail[*alliancedomain.Alliance](err)
	}

	owner, err := s.members.GetGameAccount(ctx, db, ownerAccountID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return operations.Fail[*alliancedomain.Alliance](apperrors.NotFound("game account not found"))
		}
		return operations.Abort[*alliancedomain.Alliance](fmt.Errorf("failed to get owner account: %w", err))
	}
	if owner.UserID != actor.UserID {
		return operations.Fail[*alliancedomain.Alliance](apperrors.Forbidden("game account does not belong to you"))
	}
	if owner.AllianceID != nil {
		return operations.Fail[*alliancedomain.Alliance](apperrors.Conflict("game account is already in an alliance"))
	}

	alliance := &alliancedb.Alliance{Name: name, Tag: tag, OwnerID: owner.ID}
	if err := s.repo.CreateAlliance(ctx, db, alliance); err != nil {
		if errors.Is(err, alliancedb.ErrDuplicate) {
			return operations.Fail[*alliancedomain.Alliance](apperrors.Conflict("alliance already exists"))
		}
		return operations.Abort[*alliancedomain.Alliance](err)
	}
	if err := s.members.SetAllianceMembership(ctx, db, owner.ID, &alliance.ID); err != nil {
		if errors.Is(err, userdb.ErrNoRowsAffected) {
			return operations.Fail[*alliancedomain.Alliance](apperrors.Conflict("game account is already in an alliance"))
		}
		return operations.Abort[*alliancedomain.Alliance](err)
	}

	st, err := s.authority.Resolve(ctx, db, alliance.ID, actor.UserID, false)
	if err != nil {
		return operations.Abort[*alliancedomain.Alliance](err)
	}
	return operations.Succeed(toAllianceView(st))
}

// UpdateAlliance renames an alliance. Owner only.
func (s *AllianceService) UpdateAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error) {
	view, err := operations.Execute(s.runner, ctx, "UpdateAlliance", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*alliancedomain.Alliance, error], error) {
		name, tag, err := normalizeIdentity(name, tag)
		if err != nil {
			return operations.Fail[*alliancedomain.Alliance](err)
		}
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[*alliancedomain.Alliance](err)
		}
		if err := alliancedomain.AssertOwner(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[*alliancedomain.Alliance](err)
		}
		if err := s.repo.UpdateAlliance(ctx, db, allianceID, name, tag); err != nil {
			return operations.Abort[*alliancedomain.Alliance](err)
		}
		st.Alliance.Name, st.Alliance.Tag = name, tag
		return operations.Succeed(toAllianceView(st))
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, alliancedomain.AllianceUpdatedV1, allianceID, alliancedomain.AlliancePayload{
		AllianceID: allianceID,
		Name:       view.Name,
		Tag:        view.Tag,
		OwnerID:    view.Owner.AccountID,
		ActorID:    actor.UserID,
	})
	return view, nil
}

// DeleteAlliance detaches every member, drops the officers and deletes the
// alliance. Placements go with the alliance row. Owner only.
func (s *AllianceService) DeleteAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) error {
	var ownerID uuid.UUID
	_, err := operations.Execute(s.runner, ctx, "DeleteAlliance", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[struct{}](err)
		}
		if err := alliancedomain.AssertOwner(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[struct{}](err)
		}
		ownerID = st.Alliance.OwnerID

		if _, err := s.members.ClearAllianceMembership(ctx, db, allianceID); err != nil {
			return operations.Abort[struct{}](err)
		}
		if _, err := s.repo.DeleteOfficers(ctx, db, allianceID); err != nil {
			return operations.Abort[struct{}](err)
		}
		if err := s.repo.DeleteAlliance(ctx, db, allianceID); err != nil {
			return operations.Abort[struct{}](err)
		}
		return operations.Succeed(struct{}{})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, alliancedomain.AllianceDeletedV1, allianceID, alliancedomain.AlliancePayload{
		AllianceID: allianceID,
		OwnerID:    ownerID,
		ActorID:    actor.UserID,
	})
	return nil
}

// ListAlliances returns every alliance ordered by name.
func (s *AllianceService) ListAlliances(ctx context.Context) ([]alliancedomain.Summary, error) {
	return operations.Execute(s.runner, ctx, "ListAlliances", "all", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]alliancedomain.Summary, error], error) {
		alliances, err := s.repo.ListAlliances(ctx, db)
		if err != nil {
			return operations.Abort[[]alliancedomain.Summary](err)
		}
		out := make([]alliancedomain.Summary, 0, len(alliances))
		for _, a := range alliances {
			out = append(out, toSummary(a))
		}
		return operations.Succeed(out)
	})
}

// ListMyAlliances returns the alliances any of the actor's accounts belongs to,
// with the actor's role in each.
func (s *AllianceService) ListMyAlliances(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Summary, error) {
	return operations.Execute(s.runner, ctx, "ListMyAlliances", actor.UserID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]alliancedomain.Summary, error], error) {
		accounts, err := s.members.ListGameAccountsByUser(ctx, db, actor.UserID)
		if err != nil {
			return operations.Abort[[]alliancedomain.Summary](err)
		}

		memberIDs := make(map[uuid.UUID][]uuid.UUID)
		var allianceIDs []uuid.UUID
		for _, a := range accounts {
			if a.AllianceID == nil {
				continue
			}
			if _, seen := memberIDs[*a.AllianceID]; !seen {
				allianceIDs = append(allianceIDs, *a.AllianceID)
			}
			memberIDs[*a.AllianceID] = append(memberIDs[*a.AllianceID], a.ID)
		}
		out := make([]alliancedomain.Summary, 0, len(allianceIDs))
		if len(allianceIDs) == 0 {
			return operations.Succeed(out)
		}

		alliances, err := s.repo.ListAlliancesByIDs(ctx, db, allianceIDs)
		if err != nil {
			return operations.Abort[[]alliancedomain.Summary](err)
		}
		for _, a := range alliances {
			officerIDs, err := s.repo.ListOfficerIDs(ctx, db, a.ID)
			if err != nil {
				return operations.Abort[[]alliancedomain.Summary](err)
			}
			// Only the actor's own accounts matter for the role.
			h := alliancedomain.Hierarchy{
				AllianceID: a.ID,
				OwnerID:    a.OwnerID,
				OfficerIDs: officerIDs,
				MemberIDs:  memberIDs[a.ID],
			}
			summary := toSummary(a)
			summary.MyRole = alliancedomain.RoleOf(h, memberIDs[a.ID])
			out = append(out, summary)
		}
		return operations.Succeed(out)
	})
}

// GetAlliance returns the resolved alliance with the actor's role in it.
func (s *AllianceService) GetAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) (*alliancedomain.Alliance, error) {
	return operations.Execute(s.runner, ctx, "GetAlliance", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*alliancedomain.Alliance, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, false)
		if err != nil {
			return operations.Classify[*alliancedomain.Alliance](err)
		}
		return operations.Succeed(toAllianceView(st))
	})
}
