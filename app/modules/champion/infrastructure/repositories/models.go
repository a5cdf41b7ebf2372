package championdb

import (
	"time"

	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Champion is a catalog entry.
type Champion struct {
	bun.BaseModel `bun:"table:champions,alias:c"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name          string    `bun:"name,notnull,unique"`
	Class         string    `bun:"class,notnull"`
	Alias         *string   `bun:"alias"`
	ImageURL      *string   `bun:"image_url"`
	SevenStar     bool      `bun:"seven_star,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ChampionUser is a roster entry: a champion held by a game account at a level.
type ChampionUser struct {
	bun.BaseModel `bun:"table:champion_users,alias:cu"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	GameAccountID uuid.UUID `bun:"game_account_id,notnull,type:uuid"`
	ChampionID    uuid.UUID `bun:"champion_id,notnull,type:uuid"`
	Stars         int       `bun:"stars,notnull"`
	Rank          int       `bun:"rank,notnull"`
	Signature     int       `bun:"signature,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// ORM relationships
	Champion    *Champion           `bun:"rel:belongs-to,join:champion_id=id"`
	GameAccount *userdb.GameAccount `bun:"rel:belongs-to,join:game_account_id=id"`
}

// Rarity is the display form of the entry's level.
func (cu *ChampionUser) Rarity() string {
	return championdomain.Rarity(cu.Stars, cu.Rank)
}

// Level is the comparable form of the entry's level.
func (cu *ChampionUser) Level() championdomain.Level {
	return championdomain.Level{Stars: cu.Stars, Rank: cu.Rank}
}

// ChampionName is the catalog name, or "" when the relation was not loaded.
func (cu *ChampionUser) ChampionName() string {
	if cu.Champion == nil {
		return ""
	}
	return cu.Champion.Name
}

// EntryUpdateFields are the columns UpdateEntry writes.
type EntryUpdateFields struct {
	Stars     int
	Rank      int
	Signature int
}
