package championdomain

import "github.com/google/uuid"

const (
	ChampionCreatedV1    = "champion.created.v1"
	RosterEntryAddedV1   = "roster.entry.added.v1"
	RosterEntryUpdatedV1 = "roster.entry.updated.v1"
	RosterEntryRemovedV1 = "roster.entry.removed.v1"
)

// RosterEntryPayload identifies a roster entry and the account holding it.
type RosterEntryPayload struct {
	EntryID       uuid.UUID `json:"entry_id"`
	GameAccountID uuid.UUID `json:"game_account_id"`
	ChampionID    uuid.UUID `json:"champion_id"`
	Rarity        string    `json:"rarity,omitempty"`
}
