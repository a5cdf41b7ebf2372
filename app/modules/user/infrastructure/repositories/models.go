package userdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the platform identity that owns game accounts.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Login         string     `bun:"login,notnull,unique" json:"login"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	Role          string     `bun:"role,notnull,default:'user'" json:"role"`
	DisabledAt    *time.Time `bun:"disabled_at" json:"disabled_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	// ORM relationships
	GameAccounts []*GameAccount `bun:"rel:has-many,join:id=user_id" json:"-"`
}

// Active reports whether the user may still act.
func (u *User) Active() bool {
	return u.DisabledAt == nil && u.DeletedAt == nil
}

// GameAccount is one in-game identity of a user. AllianceID is a lookup key into
// alliances; clearing it always clears AllianceGroup too.
type GameAccount struct {
	bun.BaseModel `bun:"table:game_accounts,alias:ga"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Pseudo        string     `bun:"pseudo,notnull" json:"pseudo"`
	IsPrimary     bool       `bun:"is_primary,notnull" json:"is_primary"`
	AllianceID    *uuid.UUID `bun:"alliance_id,type:uuid" json:"alliance_id,omitempty"`
	AllianceGroup *int       `bun:"alliance_group" json:"alliance_group,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	// ORM relationships
	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// InAlliance reports whether the account currently belongs to allianceID.
func (g *GameAccount) InAlliance(allianceID uuid.UUID) bool {
	return g.AllianceID != nil && *g.AllianceID == allianceID
}

// InGroup reports whether the account belongs to allianceID and is assigned to group.
func (g *GameAccount) InGroup(allianceID uuid.UUID, group int) bool {
	return g.InAlliance(allianceID) && g.AllianceGroup != nil && *g.AllianceGroup == group
}

// AccountIDs extracts the ids of accounts.
func AccountIDs(accounts []*GameAccount) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

// UserUpdateFields holds the optional columns UpdateUser may change. Nil fields are
// left untouched.
type UserUpdateFields struct {
	Email      *string
	Role       *string
	DisabledAt *time.Time
}

// IsEmpty reports whether no field is set.
func (u *UserUpdateFields) IsEmpty() bool {
	return u == nil || (u.Email == nil && u.Role == nil && u.DisabledAt == nil)
}
