// Package userdomain holds the user directory's public types.
package userdomain

import (
	"time"

	"github.com/google/uuid"
)

// MaxGameAccountsPerUser caps how many game accounts one user may own.
const MaxGameAccountsPerUser = 10

// User is the public view of a platform user.
type User struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}

// GameAccount is the public view of a game account.
type GameAccount struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Pseudo        string     `json:"pseudo"`
	IsPrimary     bool       `json:"is_primary"`
	AllianceID    *uuid.UUID `json:"alliance_id"`
	AllianceGroup *int       `json:"alliance_group"`
}
