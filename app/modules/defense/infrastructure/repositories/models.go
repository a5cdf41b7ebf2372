package defensedb

import (
	"time"

	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefensePlacement puts one roster entry on one node of a battlegroup's map.
// GameAccountID always equals the roster entry's owner.
type DefensePlacement struct {
	bun.BaseModel  `bun:"table:defense_placements,alias:dp"`
	ID             uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	AllianceID     uuid.UUID  `bun:"alliance_id,notnull,type:uuid"`
	Battlegroup    int        `bun:"battlegroup,notnull"`
	NodeNumber     int        `bun:"node_number,notnull"`
	ChampionUserID uuid.UUID  `bun:"champion_user_id,notnull,type:uuid"`
	GameAccountID  uuid.UUID  `bun:"game_account_id,notnull,type:uuid"`
	PlacedByID     *uuid.UUID `bun:"placed_by_id,type:uuid"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:current_timestamp"`

	// ORM relationships
	ChampionUser *championdb.ChampionUser `bun:"rel:belongs-to,join:champion_user_id=id"`
	GameAccount  *userdb.GameAccount      `bun:"rel:belongs-to,join:game_account_id=id"`
	PlacedBy     *userdb.GameAccount      `bun:"rel:belongs-to,join:placed_by_id=id"`
}
