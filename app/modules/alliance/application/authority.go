package allianceservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Standing is an actor's position in one alliance, loaded inside a transaction.
type Standing struct {
	Alliance        *alliancedb.Alliance
	Hierarchy       alliancedomain.Hierarchy
	Members         []*userdb.GameAccount
	ActorAccountIDs []uuid.UUID
	Role            alliancedomain.Role
}

// Member returns the member account with accountID, or nil.
func (s *Standing) Member(accountID uuid.UUID) *userdb.GameAccount {
	for _, m := range s.Members {
		if m.ID == accountID {
			return m
		}
	}
	return nil
}

// ActorMember returns the actor's account in the alliance, preferring the one
// with the strongest role.
func (s *Standing) ActorMember() *userdb.GameAccount {
	var best *userdb.GameAccount
	bestRank := 0
	for _, id := range s.ActorAccountIDs {
		m := s.Member(id)
		if m == nil {
			continue
		}
		rank := 1
		switch {
		case s.Hierarchy.IsOwner(id):
			rank = 3
		case s.Hierarchy.IsOfficer(id):
			rank = 2
		}
		if rank > bestRank {
			best, bestRank = m, rank
		}
	}
	return best
}

// OwnsAccount reports whether accountID belongs to the actor.
func (s *Standing) OwnsAccount(accountID uuid.UUID) bool {
	return slices.Contains(s.ActorAccountIDs, accountID)
}

// Authority resolves standings. The defense engine shares it so both modules
// apply the same role rules.
type Authority struct {
	repo    alliancedb.Repository
	members MemberStore
}

// NewAuthority creates an Authority.
func NewAuthority(repo alliancedb.Repository, members MemberStore) *Authority {
	return &Authority{repo: repo, members: members}
}

// Resolve loads the alliance, its hierarchy and the actor's accounts. With lock
// set the alliance row is locked for the rest of the transaction. A missing
// alliance is a NotFound domain error.
func (a *Authority) Resolve(ctx context.Context, db bun.IDB, allianceID, userID uuid.UUID, lock bool) (*Standing, error) {
	var (
		alliance *alliancedb.Alliance
		err      error
	)
	if lock {
		alliance, err = a.repo.LockAlliance(ctx, db, allianceID)
	} else {
		alliance, err = a.repo.GetAlliance(ctx, db, allianceID)
	}
	if err != nil {
		if errors.Is(err, alliancedb.ErrNotFound) {
			return nil, apperrors.NotFound("alliance not found")
		}
		return nil, fmt.Errorf("failed to load alliance: %w", err)
	}

	officerIDs, err := a.repo.ListOfficerIDs(ctx, db, allianceID)
	if err != nil {
		return nil, err
	}
	members, err := a.members.ListGameAccountsByAlliance(ctx, db, allianceID)
	if err != nil {
		return nil, err
	}
	actorIDs, err := a.members.ListGameAccountIDsByUser(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	h := alliancedomain.Hierarchy{
		AllianceID: alliance.ID,
		OwnerID:    alliance.OwnerID,
		OfficerIDs: officerIDs,
		MemberIDs:  userdb.AccountIDs(members),
	}
	return &Standing{
		Alliance:        alliance,
		Hierarchy:       h,
		Members:         members,
		ActorAccountIDs: actorIDs,
		Role:            alliancedomain.RoleOf(h, actorIDs),
	}, nil
}
