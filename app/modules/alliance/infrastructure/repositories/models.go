package alliancedb

import (
	"time"

	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Alliance is a guild of game accounts under one owning account.
type Alliance struct {
	bun.BaseModel `bun:"table:alliances,alias:a"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name          string    `bun:"name,notnull"`
	Tag           string    `bun:"tag,notnull"`
	OwnerID       uuid.UUID `bun:"owner_id,notnull,type:uuid"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// ORM relationships
	Owner *userdb.GameAccount `bun:"rel:belongs-to,join:owner_id=id"`
}

// AllianceOfficer marks a member account as an officer of the alliance.
type AllianceOfficer struct {
	bun.BaseModel `bun:"table:alliance_officers,alias:ao"`
	AllianceID    uuid.UUID `bun:"alliance_id,pk,type:uuid"`
	GameAccountID uuid.UUID `bun:"game_account_id,pk,type:uuid"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AllianceWithCount is an alliance row with its member count.
type AllianceWithCount struct {
	Alliance    `bun:",extend"`
	MemberCount int `bun:"member_count,scanonly"`
}
