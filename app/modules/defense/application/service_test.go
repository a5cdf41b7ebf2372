package defenseservice

import (
	"log/slog"

	alliancedb "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/google/uuid"
)

// defenseFixture is an alliance with an owner and an officer outside any
// battlegroup, plus two plain members in battlegroup 1 and one in battlegroup 2.
type defenseFixture struct {
	world     *fakeWorld
	publisher *FakePublisher
	svc       *DefenseService

	ownerUser   authdomain.Actor
	officerUser authdomain.Actor
	ennaUser    authdomain.Actor
	outsider    authdomain.Actor

	owner   *userdb.GameAccount
	officer *userdb.GameAccount
	enna    *userdb.GameAccount // bg 1
	faro    *userdb.GameAccount // bg 1
	gale    *userdb.GameAccount // bg 2
}

func newDefenseFixture() *defenseFixture {
	f := &defenseFixture{
		world:       newFakeWorld(),
		publisher:   &FakePublisher{},
		ownerUser:   authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
		officerUser: authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
		ennaUser:    authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
		outsider:    authdomain.Actor{UserID: uuid.New(), Role: authdomain.RoleUser},
	}
	w := f.world
	f.owner = w.addAccount(f.ownerUser.UserID, "Alpha")
	f.officer = w.addAccount(f.officerUser.UserID, "Bravo")
	f.enna = w.addAccount(f.ennaUser.UserID, "Enna")
	f.faro = w.addAccount(uuid.New(), "Faro")
	f.gale = w.addAccount(uuid.New(), "Gale")
	w.addAccount(f.outsider.UserID, "Zed")

	w.alliance = &alliancedb.Alliance{ID: uuid.New(), Name: "Midgard", Tag: "MID", OwnerID: f.owner.ID}
	w.join(f.owner, nil)
	w.join(f.officer, nil)
	w.join(f.enna, intPtr(1))
	w.join(f.faro, intPtr(1))
	w.join(f.gale, intPtr(2))
	w.officerIDs = []uuid.UUID{f.officer.ID}

	f.svc = NewDefenseService(w, w, w, w, f.publisher, slog.Default(), metrics.NewNoop(), nil, nil)
	return f
}

func (f *defenseFixture) allianceID() uuid.UUID {
	return f.world.alliance.ID
}

func (f *defenseFixture) topic(base string) string {
	return eventbus.FormatAllianceScopedTopic(base, f.allianceID().String())
}

func intPtr(n int) *int {
	return &n
}
