package alliancedomain

import (
	"time"

	"github.com/google/uuid"
)

// Member is one account of an alliance as shown to clients.
type Member struct {
	AccountID uuid.UUID `json:"account_id"`
	UserID    uuid.UUID `json:"user_id"`
	Pseudo    string    `json:"pseudo"`
	Group     *int      `json:"group"`
	IsOwner   bool      `json:"is_owner"`
	IsOfficer bool      `json:"is_officer"`
}

// Alliance is the resolved view of an alliance.
type Alliance struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag"`
	Owner       Member    `json:"owner"`
	Members     []Member  `json:"members"`
	Officers    []Member  `json:"officers"`
	MemberCount int       `json:"member_count"`
	MyRole      Role      `json:"my_role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is the list form of an alliance.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerPseudo string    `json:"owner_pseudo"`
	MemberCount int       `json:"member_count"`
	MyRole      Role      `json:"my_role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Candidate is a game account offered in a selection list.
type Candidate struct {
	AccountID uuid.UUID `json:"account_id"`
	UserID    uuid.UUID `json:"user_id"`
	Pseudo    string    `json:"pseudo"`
}
