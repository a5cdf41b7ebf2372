package allianceservice

import (
	"fmt"
	"log/slog"

	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/google/uuid"
)

// allianceFixture is an alliance "Midgard" with an owner, one officer and one
// plain member, each held by a different user.
type allianceFixture struct {
	world     *fakeWorld
	releaser  *fakeReleaser
	publisher *FakePublisher
	svc       *AllianceService

	alliance *alliancedb.Alliance

	ownerUser   authdomain.Actor
	officerUser authdomain.Actor
	memberUser  authdomain.Actor
	outsider    authdomain.Actor

	owner   *userdb.GameAccount
	officer *userdb.GameAccount
	member  *userdb.GameAccount
}

func newAllianceFixture() *allianceFixture {
	f := &allianceFixture{
		world:       newFakeWorld(),
		releaser:    &fakeReleaser{},
		publisher:   &FakePublisher{},
		ownerUser:   authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
		officerUser: authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
		memberUser:  authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
		outsider:    authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
	}
	f.owner = f.world.addAccount(f.ownerUser.UserID, "Alpha")
	f.officer = f.world.addAccount(f.officerUser.UserID, "Bravo")
	f.member = f.world.addAccount(f.memberUser.UserID, "Charlie")

	f.alliance = f.world.addAlliance(f.owner, "Midgard")
	f.world.join(f.alliance.ID, f.officer, nil)
	f.world.join(f.alliance.ID, f.member, nil)
	f.world.promote(f.alliance.ID, f.officer.ID)
	f.world.resetTrace()

	f.svc = NewAllianceService(f.world, f.world, f.releaser, f.publisher, slog.Default(), metrics.NewNoop(), nil, nil)
	return f
}

// fill adds n accounts of fresh users to the alliance.
func (f *allianceFixture) fill(n int, group *int) {
	for i := range n {
		a := f.world.addAccount(uuid.New(), fmt.Sprintf("Filler%02d", i))
		f.world.join(f.alliance.ID, a, group)
	}
}

func (f *allianceFixture) topic(base string) string {
	return eventbus.FormatAllianceScopedTopic(base, f.alliance.ID.String())
}

func intPtr(n int) *int {
	return &n
}
