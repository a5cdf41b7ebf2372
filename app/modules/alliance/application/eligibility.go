package allianceservice

import (
	"context"
	"strings"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EligibleOwners lists the actor's accounts that could found an alliance.
func (s *AllianceService) EligibleOwners(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Candidate, error) {
	return operations.Execute(s.runner, ctx, "EligibleOwners", actor.UserID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]alliancedomain.Candidate, error], error) {
		accounts, err := s.members.ListGameAccountsByUser(ctx, db, actor.UserID)
		if err != nil {
			return operations.Abort[[]alliancedomain.Candidate](err)
		}
		out := make([]alliancedomain.Candidate, 0, len(accounts))
		for _, a := range accounts {
			if a.AllianceID == nil {
				out = append(out, toCandidate(a))
			}
		}
		return operations.Succeed(out)
	})
}

// EligibleOfficers lists members that could be promoted. Owner only.
func (s *AllianceService) EligibleOfficers(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) ([]alliancedomain.Candidate, error) {
	return operations.Execute(s.runner, ctx, "EligibleOfficers", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]alliancedomain.Candidate, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, false)
		if err != nil {
			return operations.Classify[[]alliancedomain.Candidate](err)
		}
		if err := alliancedomain.AssertOwner(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[[]alliancedomain.Candidate](err)
		}
		out := make([]alliancedomain.Candidate, 0, len(st.Members))
		for _, m := range st.Members {
			if st.Hierarchy.IsOwner(m.ID) || st.Hierarchy.IsOfficer(m.ID) {
				continue
			}
			out = append(out, toCandidate(m))
		}
		return operations.Succeed(out)
	})
}

// EligibleMembers searches unaffiliated accounts by pseudo. Owner or officer.
func (s *AllianceService) EligibleMembers(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, search string) ([]alliancedomain.Candidate, error) {
	return operations.Execute(s.runner, ctx, "EligibleMembers", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]alliancedomain.Candidate, error], error) {
		st, err := s.authority.Resolve(ctx, db, allianceID, actor.UserID, false)
		if err != nil {
			return operations.Classify[[]alliancedomain.Candidate](err)
		}
		if err := alliancedomain.AssertOwnerOrOfficer(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[[]alliancedomain.Candidate](err)
		}
		accounts, err := s.members.ListUnaffiliatedGameAccounts(ctx, db, strings.TrimSpace(search), eligibleMembersLimit)
		if err != nil {
			return operations.Abort[[]alliancedomain.Candidate](err)
		}
		out := make([]alliancedomain.Candidate, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, toCandidate(a))
		}
		return operations.Succeed(out)
	})
}
