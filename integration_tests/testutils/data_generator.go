package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Black-And-White-Club/alliance-bot/app"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championservice "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/application"
	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
)

// TestDataGenerator seeds users, accounts and champions through the real
// services, with gofakeit supplying unique names.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	app   *app.App
	admin *authdomain.Actor
	seq   int
}

// NewTestDataGenerator returns a generator bound to a composed application. The
// seed defaults to the current time.
func NewTestDataGenerator(a *app.App, seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), app: a}
}

// next returns a suffix unique within the generator, so faked names never collide.
func (g *TestDataGenerator) next() int {
	g.seq++
	return g.seq
}

// User registers a platform user and returns it as an actor.
func (g *TestDataGenerator) User(t *testing.T, ctx context.Context) authdomain.Actor {
	t.Helper()
	return g.user(t, ctx, authdomain.RoleUser)
}

// Admin returns the generator's admin actor, registering it on first use.
func (g *TestDataGenerator) Admin(t *testing.T, ctx context.Context) authdomain.Actor {
	t.Helper()
	if g.admin == nil {
		admin := g.user(t, ctx, authdomain.RoleAdmin)
		g.admin = &admin
	}
	return *g.admin
}

func (g *TestDataGenerator) user(t *testing.T, ctx context.Context, role authdomain.Role) authdomain.Actor {
	t.Helper()
	n := g.next()
	login := fmt.Sprintf("%s%d", g.faker.Username(), n)
	email := fmt.Sprintf("u%d.%s", n, g.faker.Email())

	user, err := g.app.UserModule.Service().RegisterUser(ctx, login, email, role)
	require.NoError(t, err)
	return authdomain.Actor{UserID: user.ID, Role: role}
}

// Account creates a game account with a faked pseudo for owner.
func (g *TestDataGenerator) Account(t *testing.T, ctx context.Context, owner authdomain.Actor) *userdomain.GameAccount {
	t.Helper()
	return g.NamedAccount(t, ctx, owner, fmt.Sprintf("%s%d", g.faker.FirstName(), g.next()))
}

// NamedAccount creates a game account with a fixed pseudo.
func (g *TestDataGenerator) NamedAccount(t *testing.T, ctx context.Context, owner authdomain.Actor, pseudo string) *userdomain.GameAccount {
	t.Helper()
	account, err := g.app.UserModule.Service().CreateGameAccount(ctx, owner, pseudo)
	require.NoError(t, err)
	return account
}

// Champion adds a champion to the catalog. An empty name is faked.
func (g *TestDataGenerator) Champion(t *testing.T, ctx context.Context, name string) *championdomain.Champion {
	t.Helper()
	if name == "" {
		name = fmt.Sprintf("%s %d", g.faker.HipsterWord(), g.next())
	}
	class := championdomain.Classes[g.faker.Number(0, len(championdomain.Classes)-1)]

	champion, err := g.app.ChampionModule.Service().CreateChampion(ctx, g.Admin(t, ctx), championservice.ChampionInput{
		Name:      name,
		Class:     class,
		SevenStar: true,
	})
	require.NoError(t, err)
	return champion
}

// Entry adds champion to the account's roster at the given level.
func (g *TestDataGenerator) Entry(t *testing.T, ctx context.Context, owner authdomain.Actor, accountID, championID uuid.UUID, stars, rank int) *championdomain.RosterEntry {
	t.Helper()
	entry, err := g.app.ChampionModule.Service().AddRosterEntry(ctx, owner, accountID, championservice.RosterInput{
		ChampionID: championID,
		LevelInput: championservice.LevelInput{Stars: stars, Rank: rank},
	})
	require.NoError(t, err)
	return entry
}
