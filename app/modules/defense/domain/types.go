// Package defensedomain holds the defense map limits, the placement views and
// the ranking behind the available-champions list.
package defensedomain

import (
	"time"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	"github.com/google/uuid"
)

const (
	// NodeCount is the number of nodes on one battlegroup's defense map.
	NodeCount = 55
	// MaxDefendersPerPlayer caps one account's placements in one battlegroup.
	MaxDefendersPerPlayer = 5
)

// ValidBattlegroup reports whether bg is 1, 2 or 3.
func ValidBattlegroup(bg int) bool {
	return bg >= alliancedomain.MinGroup && bg <= alliancedomain.MaxGroup
}

// ValidNode reports whether node lies on the map.
func ValidNode(node int) bool {
	return node >= 1 && node <= NodeCount
}

// PlacedChampion is the catalog part of a placement.
type PlacedChampion struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Class    string    `json:"class"`
	ImageURL *string   `json:"image_url,omitempty"`
}

// Placement is one occupied node, joined with its champion and accounts.
type Placement struct {
	ID             uuid.UUID      `json:"id"`
	AllianceID     uuid.UUID      `json:"alliance_id"`
	Battlegroup    int            `json:"battlegroup"`
	Node           int            `json:"node"`
	RosterEntryID  uuid.UUID      `json:"roster_entry_id"`
	GameAccountID  uuid.UUID      `json:"game_account_id"`
	Pseudo         string         `json:"pseudo"`
	Champion       PlacedChampion `json:"champion"`
	Stars          int            `json:"stars"`
	Rank           int            `json:"rank"`
	Rarity         string         `json:"rarity"`
	PlacedByID     *uuid.UUID     `json:"placed_by_id,omitempty"`
	PlacedByPseudo string         `json:"placed_by_pseudo,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MemberLoad is a battlegroup member with its placement count.
type MemberLoad struct {
	GameAccountID uuid.UUID `json:"game_account_id"`
	Pseudo        string    `json:"pseudo"`
	DefenderCount int       `json:"defender_count"`
	MaxDefenders  int       `json:"max_defenders"`
}
