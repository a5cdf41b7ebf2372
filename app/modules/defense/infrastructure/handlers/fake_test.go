package defensehandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	defenseservice "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/application"
	defensedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/domain"
	"github.com/google/uuid"
)

type FakeService struct {
	PlaceDefenderFunc       func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg, node int, input defenseservice.PlaceInput) (*defensedomain.Placement, error)
	RemoveDefenderFunc      func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg, node int) error
	ClearDefenseFunc        func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) (int, error)
	GetDefenseFunc          func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) ([]defensedomain.Placement, error)
	AvailableChampionsFunc  func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) ([]defensedomain.AvailableChampion, error)
	BGMembersWithCountsFunc func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) ([]defensedomain.MemberLoad, error)
}

var _ defenseservice.Service = (*FakeService)(nil)

func (f *FakeService) PlaceDefender(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg, node int, input defenseservice.PlaceInput) (*defensedomain.Placement, error) {
	if f.PlaceDefenderFunc != nil {
		return f.PlaceDefenderFunc(ctx, actor, allianceID, bg, node, input)
	}
	return &defensedomain.Placement{ID: uuid.New(), AllianceID: allianceID, Battlegroup: bg, Node: node, RosterEntryID: input.RosterEntryID}, nil
}

func (f *FakeService) RemoveDefender(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg, node int) error {
	if f.RemoveDefenderFunc != nil {
		return f.RemoveDefenderFunc(ctx, actor, allianceID, bg, node)
	}
	return nil
}

func (f *FakeService) ClearDefense(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) (int, error) {
	if f.ClearDefenseFunc != nil {
		return f.ClearDefenseFunc(ctx, actor, allianceID, bg)
	}
	return 0, nil
}

func (f *FakeService) GetDefense(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) ([]defensedomain.Placement, error) {
	if f.GetDefenseFunc != nil {
		return f.GetDefenseFunc(ctx, actor, allianceID, bg)
	}
	return []defensedomain.Placement{}, nil
}

func (f *FakeService) AvailableChampions(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) ([]defensedomain.AvailableChampion, error) {
	if f.AvailableChampionsFunc != nil {
		return f.AvailableChampionsFunc(ctx, actor, allianceID, bg)
	}
	return []defensedomain.AvailableChampion{}, nil
}

func (f *FakeService) BGMembersWithCounts(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, bg int) ([]defensedomain.MemberLoad, error) {
	if f.BGMembersWithCountsFunc != nil {
		return f.BGMembersWithCountsFunc(ctx, actor, allianceID, bg)
	}
	return []defensedomain.MemberLoad{}, nil
}
