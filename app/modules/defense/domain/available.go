package defensedomain

import (
	"cmp"
	"slices"

	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	"github.com/google/uuid"
)

// Candidate is an unplaced roster entry of a battlegroup member.
type Candidate struct {
	RosterEntryID uuid.UUID
	GameAccountID uuid.UUID
	Pseudo        string
	Champion      PlacedChampion
	Stars         int
	Rank          int
	Signature     int
}

// AvailableOwner is one account able to field a champion.
type AvailableOwner struct {
	RosterEntryID uuid.UUID `json:"roster_entry_id"`
	GameAccountID uuid.UUID `json:"game_account_id"`
	Pseudo        string    `json:"pseudo"`
	Stars         int       `json:"stars"`
	Rank          int       `json:"rank"`
	Signature     int       `json:"signature"`
	Rarity        string    `json:"rarity"`
	DefenderCount int       `json:"defender_count"`
}

// AvailableChampion groups the owners able to field one champion.
type AvailableChampion struct {
	Champion PlacedChampion   `json:"champion"`
	Owners   []AvailableOwner `json:"owners"`
}

// BuildAvailableChampions groups candidates by champion. Accounts at the
// defender cap are left out. Owners are ordered by level descending, then by
// current load ascending; groups are ordered by champion name.
func BuildAvailableChampions(candidates []Candidate, counts map[uuid.UUID]int) []AvailableChampion {
	groups := make(map[uuid.UUID]*AvailableChampion)
	for _, c := range candidates {
		load := counts[c.GameAccountID]
		if load >= MaxDefendersPerPlayer {
			continue
		}
		g, ok := groups[c.Champion.ID]
		if !ok {
			g = &AvailableChampion{Champion: c.Champion}
			groups[c.Champion.ID] = g
		}
		g.Owners = append(g.Owners, AvailableOwner{
			RosterEntryID: c.RosterEntryID,
			GameAccountID: c.GameAccountID,
			Pseudo:        c.Pseudo,
			Stars:         c.Stars,
			Rank:          c.Rank,
			Signature:     c.Signature,
			Rarity:        championdomain.Rarity(c.Stars, c.Rank),
			DefenderCount: load,
		})
	}

	out := make([]AvailableChampion, 0, len(groups))
	for _, g := range groups {
		slices.SortStableFunc(g.Owners, compareOwners)
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b AvailableChampion) int {
		return cmp.Or(
			cmp.Compare(a.Champion.Name, b.Champion.Name),
			cmp.Compare(a.Champion.ID.String(), b.Champion.ID.String()),
		)
	})
	return out
}

func compareOwners(a, b AvailableOwner) int {
	la := championdomain.Level{Stars: a.Stars, Rank: a.Rank}
	lb := championdomain.Level{Stars: b.Stars, Rank: b.Rank}
	return cmp.Or(
		lb.Compare(la),
		cmp.Compare(a.DefenderCount, b.DefenderCount),
		cmp.Compare(a.Pseudo, b.Pseudo),
	)
}
