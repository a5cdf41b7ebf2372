package defenseservice

import (
	"context"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	defensedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// readStanding validates bg and resolves a member's standing for the read
// operations.
func (s *DefenseService) readStanding(ctx context.Context, db bun.IDB, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) (*allianceservice.Standing, error) {
	if err := validateBattlegroup(battlegroup); err != nil {
		return nil, err
	}
	st, err := s.standings.Resolve(ctx, db, allianceID, actor.UserID, false)
	if err != nil {
		return nil, err
	}
	if err := requireMember(st); err != nil {
		return nil, err
	}
	return st, nil
}

func groupMembers(st *allianceservice.Standing, battlegroup int) []*userdb.GameAccount {
	var out []*userdb.GameAccount
	for _, m := range st.Members {
		if m.InGroup(st.Alliance.ID, battlegroup) {
			out = append(out, m)
		}
	}
	return out
}

// GetDefense returns a battlegroup's placements ordered by node.
func (s *DefenseService) GetDefense(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) ([]defensedomain.Placement, error) {
	return operations.Execute(s.runner, ctx, "GetDefense", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]defensedomain.Placement, error], error) {
		if _, err := s.readStanding(ctx, db, actor, allianceID, battlegroup); err != nil {
			return operations.Classify[[]defensedomain.Placement](err)
		}
		placements, err := s.repo.ListPlacements(ctx, db, allianceID, battlegroup)
		if err != nil {
			return operations.Abort[[]defensedomain.Placement](err)
		}
		out := make([]defensedomain.Placement, 0, len(placements))
		for _, p := range placements {
			out = append(out, toPlacementView(p))
		}
		return operations.Succeed(out)
	})
}

// AvailableChampions lists, per champion, the battlegroup members able to place
// it. Entries already on the map and accounts at the cap are left out.
func (s *DefenseService) AvailableChampions(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) ([]defensedomain.AvailableChampion, error) {
	return operations.Execute(s.runner, ctx, "AvailableChampions", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]defensedomain.AvailableChampion, error], error) {
		st, err := s.readStanding(ctx, db, actor, allianceID, battlegroup)
		if err != nil {
			return operations.Classify[[]defensedomain.AvailableChampion](err)
		}
		members := groupMembers(st, battlegroup)
		if len(members) == 0 {
			return operations.Succeed([]defensedomain.AvailableChampion{})
		}

		placements, err := s.repo.ListPlacements(ctx, db, allianceID, battlegroup)
		if err != nil {
			return operations.Abort[[]defensedomain.AvailableChampion](err)
		}
		placed := make(map[uuid.UUID]bool, len(placements))
		counts := make(map[uuid.UUID]int)
		for _, p := range placements {
			placed[p.ChampionUserID] = true
			counts[p.GameAccountID]++
		}

		entries, err := s.rosters.ListEntriesByAccounts(ctx, db, userdb.AccountIDs(members))
		if err != nil {
			return operations.Abort[[]defensedomain.AvailableChampion](err)
		}
		pseudos := make(map[uuid.UUID]string, len(members))
		for _, m := range members {
			pseudos[m.ID] = m.Pseudo
		}

		candidates := make([]defensedomain.Candidate, 0, len(entries))
		for _, e := range entries {
			if placed[e.ID] || e.Champion == nil {
				continue
			}
			candidates = append(candidates, defensedomain.Candidate{
				RosterEntryID: e.ID,
				GameAccountID: e.GameAccountID,
				Pseudo:        pseudos[e.GameAccountID],
				Champion: defensedomain.PlacedChampion{
					ID:       e.Champion.ID,
					Name:     e.Champion.Name,
					Class:    e.Champion.Class,
					ImageURL: e.Champion.ImageURL,
				},
				Stars:     e.Stars,
				Rank:      e.Rank,
				Signature: e.Signature,
			})
		}
		return operations.Succeed(defensedomain.BuildAvailableChampions(candidates, counts))
	})
}

// BGMembersWithCounts lists the battlegroup's members with their placement
// counts against the cap.
func (s *DefenseService) BGMembersWithCounts(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, battlegroup int) ([]defensedomain.MemberLoad, error) {
	return operations.Execute(s.runner, ctx, "BGMembersWithCounts", allianceID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]defensedomain.MemberLoad, error], error) {
		st, err := s.readStanding(ctx, db, actor, allianceID, battlegroup)
		if err != nil {
			return operations.Classify[[]defensedomain.MemberLoad](err)
		}
		counts, err := s.repo.CountsByAccount(ctx, db, allianceID, battlegroup)
		if err != nil {
			return operations.Abort[[]defensedomain.MemberLoad](err)
		}
		members := groupMembers(st, battlegroup)
		out := make([]defensedomain.MemberLoad, 0, len(members))
		for _, m := range members {
			out = append(out, defensedomain.MemberLoad{
				GameAccountID: m.ID,
				Pseudo:        m.Pseudo,
				DefenderCount: counts[m.ID],
				MaxDefenders:  defensedomain.MaxDefendersPerPlayer,
			})
		}
		return operations.Succeed(out)
	})
}
