package defenseservice

import (
	"context"
	"errors"
	"fmt"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	defensedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/domain"
	defensedb "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// placed is what a placement transaction hands back to the caller.
type placed struct {
	view     *defensedomain.Placement
	replaced *uuid.UUID
}

// PlaceDefender puts a roster entry on a node. An occupied node is replaced.
// Owners and officers place for any battlegroup member, plain members only for
// their own accounts.
func (s *DefenseService) PlaceDefender(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup, node int, input PlaceInput) (*defensedomain.Placement, error) {
	out, err := operations.Execute(s.runner, ctx, "PlaceDefender", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[placed, error], error) {
		return s.placeDefenderLogic(ctx, db, actor, allianceID, battlegroup, node, input)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, defensedomain.DefensePlacedV1, allianceID, defensedomain.NodePayload{
		AllianceID:    allianceID,
		Battlegroup:   battlegroup,
		Node:          node,
		RosterEntryID: out.view.RosterEntryID,
		GameAccountID: out.view.GameAccountID,
		Replaced:      out.replaced,
		ActorID:       actor.UserID,
	})
	return out.view, nil
}

func (s *DefenseService) placeDefenderLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, allianceID uuid.UUID, battlegroup, node int, input PlaceInput) (results.OperationResult[placed, error], error) {
	if err := validateBattlegroup(battlegroup); err != nil {
		return operations.Fail[placed](err)
	}
	if err := validateNode(node); err != nil {
		return operations.Fail[placed](err)
	}

	st, err := s.standings.Resolve(ctx, db, allianceID, actor.UserID, true)
	if err != nil {
		return operations.Classify[placed](err)
	}
	placer, err := authorizePlacement(st, input)
	if err != nil {
		return operations.Fail[placed](err)
	}

	// The roster entry must belong to the account it is placed for.
	entry, err := s.rosters.GetEntry(ctx, db, input.RosterEntryID)
	if err != nil {
		if errors.Is(err, championdb.ErrNotFound) {
			return operations.Fail[placed](apperrors.NotFound("roster entry not found"))
		}
		return operations.Abort[placed](fmt.Errorf("failed to get roster entry: %w", err))
	}
	if entry.GameAccountID != input.GameAccountID {
		return operations.Fail[placed](apperrors.BadRequest("roster entry does not belong to that game account"))
	}

	// Its owner must sit in this exact battlegroup.
	owner, err := s.accounts.GetGameAccount(ctx, db, input.GameAccountID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return operations.Fail[placed](apperrors.NotFound("game account not found"))
		}
		return operations.Abort[placed](fmt.Errorf("failed to get game account: %w", err))
	}
	if !owner.InGroup(allianceID, battlegroup) {
		return operations.Fail[placed](apperrors.BadRequest("%s is not assigned to battlegroup %d of this alliance", owner.Pseudo, battlegroup))
	}

	var replaced *uuid.UUID
	occupant, err := s.repo.GetPlacementAtNode(ctx, db, allianceID, battlegroup, node)
	switch {
	case err == nil:
		if err := s.repo.DeletePlacement(ctx, db, occupant.ID); err != nil {
			return operations.Abort[placed](err)
		}
		replaced = &occupant.ChampionUserID
	case !errors.Is(err, defensedb.ErrNotFound):
		return operations.Abort[placed](err)
	}

	existing, err := s.repo.FindPlacementOfEntry(ctx, db, allianceID, battlegroup, entry.ID)
	switch {
	case err == nil:
		return operations.Fail[placed](apperrors.Conflict("%s is already placed on node %d", entry.ChampionName(), existing.NodeNumber))
	case !errors.Is(err, defensedb.ErrNotFound):
		return operations.Abort[placed](err)
	}

	count, err := s.repo.CountByAccount(ctx, db, allianceID, battlegroup, owner.ID)
	if err != nil {
		return operations.Abort[placed](err)
	}
	if count >= defensedomain.MaxDefendersPerPlayer {
		return operations.Fail[placed](apperrors.BadRequest("%s already has %d defenders in battlegroup %d", owner.Pseudo, defensedomain.MaxDefendersPerPlayer, battlegroup))
	}

	placement := &defensedb.DefensePlacement{
		AllianceID:     allianceID,
		Battlegroup:    battlegroup,
		NodeNumber:     node,
		ChampionUserID: entry.ID,
		GameAccountID:  owner.ID,
		PlacedByID:     &placer.ID,
	}
	if err := s.repo.CreatePlacement(ctx, db, placement); err != nil {
		if errors.Is(err, defensedb.ErrDuplicate) {
			return operations.Fail[placed](apperrors.Conflict("node %d or %s was taken concurrently", node, entry.ChampionName()))
		}
		return operations.Abort[placed](err)
	}

	full, err := s.repo.GetPlacement(ctx, db, placement.ID)
	if err != nil {
		return operations.Abort[placed](fmt.Errorf("failed to reload placement: %w", err))
	}
	view := toPlacementView(full)
	return operations.Succeed(placed{view: &view, replaced: replaced})
}

// authorizePlacement applies the caller rules and returns the account recorded
// as the placer.
func authorizePlacement(st *allianceservice.Standing, input PlaceInput) (*userdb.GameAccount, error) {
	if err := requireMember(st); err != nil {
		return nil, err
	}
	if st.Role == alliancedomain.RoleMember && !st.OwnsAccount(input.GameAccountID) {
		return nil, apperrors.Forbidden("members can only place their own champions")
	}
	if input.PlacedByID == nil {
		return st.ActorMember(), nil
	}
	placer := st.Member(*input.PlacedByID)
	if placer == nil || !st.OwnsAccount(placer.ID) {
		return nil, apperrors.Forbidden("placed_by must be one of your accounts in this alliance")
	}
	return placer, nil
}

// RemoveDefender frees a node. Owners and officers may free any node, plain
// members only nodes holding their own champions.
func (s *DefenseService) RemoveDefender(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup, node int) error {
	var removed *defensedb.DefensePlacement
	_, err := operations.Execute(s.runner, ctx, "RemoveDefender", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		if err := validateBattlegroup(battlegroup); err != nil {
			return operations.Fail[struct{}](err)
		}
		if err := validateNode(node); err != nil {
			return operations.Fail[struct{}](err)
		}
		st, err := s.standings.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[struct{}](err)
		}
		if err := requireMember(st); err != nil {
			return operations.Fail[struct{}](err)
		}

		occupant, err := s.repo.GetPlacementAtNode(ctx, db, allianceID, battlegroup, node)
		if err != nil {
			if errors.Is(err, defensedb.ErrNotFound) {
				return operations.Fail[struct{}](apperrors.NotFound("node %d of battlegroup %d is empty", node, battlegroup))
			}
			return operations.Abort[struct{}](err)
		}
		if st.Role == alliancedomain.RoleMember && !st.OwnsAccount(occupant.GameAccountID) {
			return operations.Fail[struct{}](apperrors.Forbidden("members can only remove their own champions"))
		}
		if err := s.repo.DeletePlacement(ctx, db, occupant.ID); err != nil {
			return operations.Abort[struct{}](err)
		}
		removed = occupant
		return operations.Succeed(struct{}{})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, defensedomain.DefenseRemovedV1, allianceID, defensedomain.NodePayload{
		AllianceID:    allianceID,
		Battlegroup:   battlegroup,
		Node:          node,
		RosterEntryID: removed.ChampionUserID,
		GameAccountID: removed.GameAccountID,
		ActorID:       actor.UserID,
	})
	return nil
}

// ClearDefense empties a battlegroup's map and returns how many placements it
// held. Owner or officer.
func (s *DefenseService) ClearDefense(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) (int, error) {
	removed, err := operations.Execute(s.runner, ctx, "ClearDefense", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		if err := validateBattlegroup(battlegroup); err != nil {
			return operations.Fail[int](err)
		}
		st, err := s.standings.Resolve(ctx, db, allianceID, actor.UserID, true)
		if err != nil {
			return operations.Classify[int](err)
		}
		if err := alliancedomain.AssertOwnerOrOfficer(st.Hierarchy, st.ActorAccountIDs); err != nil {
			return operations.Fail[int](err)
		}
		n, err := s.repo.ClearBattlegroup(ctx, db, allianceID, battlegroup)
		if err != nil {
			return operations.Abort[int](err)
		}
		return operations.Succeed(n)
	})
	if err != nil {
		return 0, err
	}
	s.publish(ctx, defensedomain.DefenseClearedV1, allianceID, defensedomain.ClearedPayload{
		AllianceID:  allianceID,
		Battlegroup: battlegroup,
		Removed:     removed,
		ActorID:     actor.UserID,
	})
	return removed, nil
}
