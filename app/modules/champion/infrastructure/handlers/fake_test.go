package championhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championservice "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/application"
	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	"github.com/google/uuid"
)

type FakeService struct {
	ListChampionsFunc      func(ctx context.Context, search string) ([]championdomain.Champion, error)
	GetChampionFunc        func(ctx context.Context, championID uuid.UUID) (*championdomain.Champion, error)
	CreateChampionFunc     func(ctx context.Context, actor authdomain.Actor, input championservice.ChampionInput) (*championdomain.Champion, error)
	GetRosterFunc          func(ctx context.Context, accountID uuid.UUID) ([]championdomain.RosterEntry, error)
	AddRosterEntryFunc     func(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, input championservice.RosterInput) (*championdomain.RosterEntry, error)
	UpgradeRosterEntryFunc func(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID, input championservice.LevelInput) (*championdomain.RosterEntry, error)
	RemoveRosterEntryFunc  func(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID) error
}

func (f *FakeService) ListChampions(ctx context.Context, search string) ([]championdomain.Champion, error) {
	if f.ListChampionsFunc != nil {
		return f.ListChampionsFunc(ctx, search)
	}
	return []championdomain.Champion{}, nil
}

func (f *FakeService) GetChampion(ctx context.Context, championID uuid.UUID) (*championdomain.Champion, error) {
	if f.GetChampionFunc != nil {
		return f.GetChampionFunc(ctx, championID)
	}
	return &championdomain.Champion{ID: championID}, nil
}

func (f *FakeService) CreateChampion(ctx context.Context, actor authdomain.Actor, input championservice.ChampionInput) (*championdomain.Champion, error) {
	if f.CreateChampionFunc != nil {
		return f.CreateChampionFunc(ctx, actor, input)
	}
	return &championdomain.Champion{ID: uuid.New(), Name: input.Name, Class: input.Class}, nil
}

func (f *FakeService) GetRoster(ctx context.Context, accountID uuid.UUID) ([]championdomain.RosterEntry, error) {
	if f.GetRosterFunc != nil {
		return f.GetRosterFunc(ctx, accountID)
	}
	return []championdomain.RosterEntry{}, nil
}

func (f *FakeService) AddRosterEntry(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, input championservice.RosterInput) (*championdomain.RosterEntry, error) {
	if f.AddRosterEntryFunc != nil {
		return f.AddRosterEntryFunc(ctx, actor, accountID, input)
	}
	return &championdomain.RosterEntry{ID: uuid.New(), GameAccountID: accountID, Stars: input.Stars, Rank: input.Rank}, nil
}

func (f *FakeService) UpgradeRosterEntry(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID, input championservice.LevelInput) (*championdomain.RosterEntry, error) {
	if f.UpgradeRosterEntryFunc != nil {
		return f.UpgradeRosterEntryFunc(ctx, actor, entryID, input)
	}
	return &championdomain.RosterEntry{ID: entryID, Stars: input.Stars, Rank: input.Rank}, nil
}

func (f *FakeService) RemoveRosterEntry(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID) error {
	if f.RemoveRosterEntryFunc != nil {
		return f.RemoveRosterEntryFunc(ctx, actor, entryID)
	}
	return nil
}

var _ championservice.Service = (*FakeService)(nil)
