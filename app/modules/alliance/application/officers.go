package allianceservice

import (
	"context"
	"errors"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AddOfficer promotes a member. Owner only.
func (s *AllianceService) AddOfficer(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error) {
	member, err := operations.Execute(s.runner, ctx, "AddOfficer", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*alliancedomain.Member, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[*alliancedomain.Member](err)
		}
		if err := alliancedomain.AssertOwner(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[*alliancedomain.Member](err)
		}
		account := st.Member(accountID)
		if account == nil {
			return operations.Fail[*alliancedomain.Member](apperrors.BadRequest("game account is not a member of this alliance"))
		}
		if st.Hierarchy.IsOwner(accountID) {
			return operations.Fail[*alliancedomain.Member](apperrors.BadRequest("the alliance owner cannot be an officer"))
		}
		if st.Hierarchy.IsOfficer(accountID) {
			return operations.Fail[*alliancedomain.Member](apperrors.Conflict("game account is already an officer"))
		}

		if err := s.repo.AddOfficer(ctx, db, allianceID, accountID); err != nil {
			if errors.Is(err, alliancedb.ErrDuplicate) {
				return operations.Fail[*alliancedomain.Member](apperrors.Conflict("game account is already an officer"))
			}
			return operations.Abort[*alliancedomain.Member](err)
		}

		member := toMember(account, st.Hierarchy)
		member.IsOfficer = true
		return operations.Succeed(&member)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, alliancedomain.AllianceOfficerAddedV1, allianceID, alliancedomain.MembershipPayload{
		AllianceID: allianceID,
		AccountID:  accountID,
		ActorID:    actor.UserID,
	})
	return member, nil
}

// RemoveOfficer demotes an officer back to a plain member. Owner only.
func (s *AllianceService) RemoveOfficer(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error {
	_, err := operations.Execute(s.runner, ctx, "RemoveOfficer", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[struct{}](err)
		}
		if err := alliancedomain.AssertOwner(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[struct{}](err)
		}
		if err := s.repo.RemoveOfficer(ctx, db, allianceID, accountID); err != nil {
			if errors.Is(err, alliancedb.ErrNoRowsAffected) {
				return operations.Fail[struct{}](apperrors.NotFound("game account is not an officer of this alliance"))
			}
			return operations.Abort[struct{}](err)
		}
		return operations.Succeed(struct{}{})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, alliancedomain.AllianceOfficerRemovedV1, allianceID, alliancedomain.MembershipPayload{
		AllianceID: allianceID,
		AccountID:  accountID,
		ActorID:    actor.UserID,
	})
	return nil
}
