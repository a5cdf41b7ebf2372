package defensedomain

import "github.com/google/uuid"

// Base topics. Events are published on "{base}.{allianceID}".
const (
	DefensePlacedV1  = "defense.placed.v1"
	DefenseRemovedV1 = "defense.removed.v1"
	DefenseClearedV1 = "defense.cleared.v1"
)

// NodePayload is the body of the placed and removed events.
type NodePayload struct {
	AllianceID    uuid.UUID `json:"alliance_id"`
	Battlegroup   int       `json:"battlegroup"`
	Node          int       `json:"node"`
	RosterEntryID uuid.UUID `json:"roster_entry_id"`
	GameAccountID uuid.UUID `json:"game_account_id"`
	// Replaced is the roster entry that held the node before, if any.
	Replaced *uuid.UUID `json:"replaced,omitempty"`
	ActorID  uuid.UUID  `json:"actor_id"`
}

// ClearedPayload is the body of the cleared event.
type ClearedPayload struct {
	AllianceID  uuid.UUID `json:"alliance_id"`
	Battlegroup int       `json:"battlegroup"`
	Removed     int       `json:"removed"`
	ActorID     uuid.UUID `json:"actor_id"`
}
