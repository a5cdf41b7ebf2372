package defenseintegrationtests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/user/domain"
	"github.com/Black-And-White-Club/alliance-bot/integration_tests/testutils"
)

// warRoom is an alliance with an owner and helpers to enlist players.
type warRoom struct {
	gen        *testutils.TestDataGenerator
	owner      authdomain.Actor
	allianceID uuid.UUID
}

func newWarRoom(t *testing.T, ctx context.Context, gen *testutils.TestDataGenerator) *warRoom {
	t.Helper()
	owner := gen.User(t, ctx)
	alliance, err := testEnv.App.AllianceModule.Service().CreateAlliance(ctx, owner, gen.NamedAccount(t, ctx, owner, "Alpha").ID, "War Room", "WR")
	require.NoError(t, err)
	return &warRoom{gen: gen, owner: owner, allianceID: alliance.ID}
}

// enlist creates a player with one account, adds it and assigns its battlegroup.
func (w *warRoom) enlist(t *testing.T, ctx context.Context, pseudo string, bg int) (authdomain.Actor, *userdomain.GameAccount) {
	t.Helper()
	player := w.gen.User(t, ctx)
	account := w.gen.NamedAccount(t, ctx, player, pseudo)

	alliances := testEnv.App.AllianceModule.Service()
	_, err := alliances.AddMember(ctx, w.owner, w.allianceID, account.ID)
	require.NoError(t, err)
	_, err = alliances.SetMemberGroup(ctx, w.owner, w.allianceID, account.ID, &bg)
	require.NoError(t, err)
	return player, account
}
