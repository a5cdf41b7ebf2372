package alliancedomain

import "github.com/google/uuid"

// Base topics. Events are published on "{base}.{allianceID}".
const (
	AllianceCreatedV1        = "alliance.created.v1"
	AllianceUpdatedV1        = "alliance.updated.v1"
	AllianceDeletedV1        = "alliance.deleted.v1"
	AllianceMemberAddedV1    = "alliance.member.added.v1"
	AllianceMemberRemovedV1  = "alliance.member.removed.v1"
	AllianceOfficerAddedV1   = "alliance.officer.added.v1"
	AllianceOfficerRemovedV1 = "alliance.officer.removed.v1"
	AllianceGroupChangedV1   = "alliance.group.changed.v1"
)

// AlliancePayload is the body of the lifecycle events.
type AlliancePayload struct {
	AllianceID uuid.UUID `json:"alliance_id"`
	Name       string    `json:"name,omitempty"`
	Tag        string    `json:"tag,omitempty"`
	OwnerID    uuid.UUID `json:"owner_id"`
	ActorID    uuid.UUID `json:"actor_id"`
}

// MembershipPayload is the body of the member, officer and group events.
type MembershipPayload struct {
	AllianceID uuid.UUID `json:"alliance_id"`
	AccountID  uuid.UUID `json:"account_id"`
	Group      *int      `json:"group,omitempty"`
	// ReleasedPlacements counts defense placements dropped with the change.
	ReleasedPlacements int       `json:"released_placements,omitempty"`
	ActorID            uuid.UUID `json:"actor_id"`
}
