package userdomain

import "github.com/google/uuid"

const (
	// UserRegisteredV1 is published after a user is created.
	UserRegisteredV1 = "user.registered.v1"
	// UserDisabledV1 is published after an admin disables a user.
	UserDisabledV1 = "user.disabled.v1"
	// GameAccountCreatedV1 is published after a user creates a game account.
	GameAccountCreatedV1 = "user.game-account.created.v1"
)

// UserEventPayload identifies the user an event is about.
type UserEventPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Login  string    `json:"login,omitempty"`
}

// GameAccountCreatedPayload is the body of GameAccountCreatedV1.
type GameAccountCreatedPayload struct {
	UserID    uuid.UUID `json:"user_id"`
	AccountID uuid.UUID `json:"account_id"`
	Pseudo    string    `json:"pseudo"`
}
