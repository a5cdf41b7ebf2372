package allianceservice

import (
	"context"
	"errors"
	"fmt"

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

// AddMember brings an unaffiliated account into the alliance. Owner or officer.
func (s *AllianceService) AddMember(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error) {
	member, err := operations.Execute(s.runner, ctx, "AddMember", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*alliancedomain.Member, error], error) {
		return s.addMemberLogic(ctx, db, actor, allianceID, accountID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, alliancedomain.AllianceMemberAddedV1, allianceID, alliancedomain.MembershipPayload{
		AllianceID: allianceID,
		AccountID:  accountID,
		ActorID:    actor.UserID,
	})
	return member, nil
}

func (s *AllianceService) addMemberLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, allianceID, accountID uuid.UUID) (results.OperationResult[*alliancedomain.Member, error], error) {
	st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
	if err != nil {
		return operations.Classify[*alliancedomain.Member](err)
	}
	if err := alliancedomain.AssertOwnerOrOfficer(st.Hierarchy, st.ActorAccountIDs); err != nil {
		return operations.Fail[*alliancedomain.Member](err)
	}

	account, err := s.members.GetGameAccount(ctx, db, accountID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return operations.Fail[*alliancedomain.Member](apperrors.NotFound("game account not found"))
		}
		return operations.Abort[*alliancedomain.Member](fmt.Errorf("failed to get game account: %w", err))
	}
	if account.AllianceID != nil {
		return operations.Fail[*alliancedomain.Member](apperrors.Conflict("game account is already in an alliance"))
	}
	if len(st.Members) >= alliancedomain.MaxMembers {
		return operations.Fail[*alliancedomain.Member](apperrors.Conflict("alliance already has %d members", alliancedomain.MaxMembers))
	}

	if err := s.members.SetAllianceMembership(ctx, db, accountID, &allianceID); err != nil {
		if errors.Is(err, userdb.ErrNoRowsAffected) {
			return operations.Fail[*alliancedomain.Member](apperrors.Conflict("game account is already in an alliance"))
		}
		return operations.Abort[*alliancedomain.Member](err)
	}
	account.AllianceID = &allianceID
	account.AllianceGroup = nil

	member := toMember(account, st.Hierarchy)
	return operations.Succeed(&member)
}

// RemoveMember takes an account out of the alliance. The owner may remove any
// non-owner member, an officer only plain members.
func (s *AllianceService) RemoveMember(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error {
	var released int
	_, err := operations.Execute(s.runner, ctx, "RemoveMember", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[struct{}](err)
		}
		if err := alliancedomain.AssertOwnerOrOfficer(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[struct{}](err)
		}
		if st.Hierarchy.IsOwner(accountID) {
			return operations.Fail[struct{}](apperrors.BadRequest("the alliance owner cannot be removed"))
		}
		if st.Member(accountID) == nil {
			return operations.Fail[struct{}](apperrors.NotFound("game account is not a member of this alliance"))
		}
		if err := alliancedomain.AssertCanRemoveMember(st.Hierarchy, st.ActorAccountIDs, accountID); err != nil {
			return operations.Fail[struct{}](err)
		}

		released, err = s.detach(ctx, db, allianceID, accountID)
		if err != nil {
			return operations.Abort[struct{}](err)
		}
		return operations.Succeed(struct{}{})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, alliancedomain.AllianceMemberRemovedV1, allianceID, alliancedomain.MembershipPayload{
		AllianceID:         allianceID,
		AccountID:          accountID,
		ReleasedPlacements: released,
		ActorID:            actor.UserID,
	})
	return nil
}

// LeaveAlliance lets the actor take one of their own accounts out. The owner
// cannot leave.
func (s *AllianceService) LeaveAlliance(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error {
	var released int
	_, err := operations.Execute(s.runner, ctx, "LeaveAlliance", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[struct{}](err)
		}
		if st.Member(accountID) == nil {
			return operations.Fail[struct{}](apperrors.NotFound("game account is not a member of this alliance"))
		}
		if !st.OwnsAccount(accountID) {
			return operations.Fail[struct{}](apperrors.Forbidden("game account does not belong to you"))
		}
		if st.Hierarchy.IsOwner(accountID) {
			return operations.Fail[struct{}](apperrors.BadRequest("the alliance owner cannot leave; delete the alliance instead"))
		}

		released, err = s.detach(ctx, db, allianceID, accountID)
		if err != nil {
			return operations.Abort[struct{}](err)
		}
		return operations.Succeed(struct{}{})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, alliancedomain.AllianceMemberRemovedV1, allianceID, alliancedomain.MembershipPayload{
		AllianceID:         allianceID,
		AccountID:          accountID,
		ReleasedPlacements: released,
		ActorID:            actor.UserID,
	})
	return nil
}

// detach drops the account's placements and officer row, then clears its
// membership.
func (s *AllianceService) detach(ctx context.Context, db bun.IDB, allianceID, accountID uuid.UUID) (int, error) {
	released, err := s.placements.ReleasePlacements(ctx, db, allianceID, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to release placements: %w", err)
	}
	if err := s.repo.RemoveOfficer(ctx, db, allianceID, accountID); err != nil && !errors.Is(err, alliancedb.ErrNoRowsAffected) {
		return 0, err
	}
	if err := s.members.SetAllianceMembership(ctx, db, accountID, nil); err != nil {
		return 0, err
	}
	return released, nil
}

// SetMemberGroup assigns a member to battlegroup 1-3, or unassigns it with nil.
// Changing group releases the member's placements. Owner or officer.
func (s *AllianceService) SetMemberGroup(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID, group *int) (*alliancedomain.Member, error) {
	var released int
	member, err := operations.Execute(s.runner, ctx, "SetMemberGroup", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*alliancedomain.Member, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[*alliancedomain.Member](err)
		}
		if err := alliancedomain.AssertOwnerOrOfficer(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[*alliancedomain.Member](err)
		}
		if !alliancedomain.ValidGroup(group) {
			return operations.Fail[*alliancedomain.Member](apperrors.BadRequest("group must be between %d and %d, or null", alliancedomain.MinGroup, alliancedomain.MaxGroup))
		}
		account := st.Member(accountID)
		if account == nil {
			return operations.Fail[*alliancedomain.Member](apperrors.NotFound("game account is not a member of this alliance"))
		}

		if group != nil {
			count, err := s.members.CountGameAccountsInGroup(ctx, db, allianceID, *group, accountID)
			if err != nil {
				return operations.Abort[*alliancedomain.Member](err)
			}
			if count >= alliancedomain.MaxGroupMembers {
				return operations.Fail[*alliancedomain.Member](apperrors.Conflict("battlegroup %d already has %d members", *group, alliancedomain.MaxGroupMembers))
			}
		}

		if !sameGroup(account.AllianceGroup, group) {
			released, err = s.placements.ReleasePlacements(ctx, db, allianceID, accountID)
			if err != nil {
				return operations.Abort[*alliancedomain.Member](fmt.Errorf("failed to release placements: %w", err))
			}
			if err := s.members.SetAllianceGroup(ctx, db, accountID, group); err != nil {
				return operations.Abort[*alliancedomain.Member](err)
			}
			account.AllianceGroup = group
		}

		member := toMember(account, st.Hierarchy)
		return operations.Succeed(&member)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, alliancedomain.AllianceGroupChangedV1, allianceID, alliancedomain.MembershipPayload{
		AllianceID:         allianceID,
		AccountID:          accountID,
		Group:              member.Group,
		ReleasedPlacements: released,
		ActorID:            actor.UserID,
	})
	return member, nil
}

func sameGroup(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
