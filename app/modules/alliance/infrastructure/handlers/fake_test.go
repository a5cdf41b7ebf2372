package alliancehandlers

import (
	"context"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	"github.com/google/uuid"
)

type FakeService struct {
	CreateAllianceFunc   func(ctx context.Context, actor authdomain.Actor, ownerAccountID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error)
	UpdateAllianceFunc   func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error)
	DeleteAllianceFunc   func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) error
	ListAlliancesFunc    func(ctx context.Context) ([]alliancedomain.Summary, error)
	ListMyAlliancesFunc  func(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Summary, error)
	GetAllianceFunc      func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) (*alliancedomain.Alliance, error)
	AddMemberFunc        func(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error)
	RemoveMemberFunc     func(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error
	LeaveAllianceFunc    func(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error
	SetMemberGroupFunc   func(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID, group *int) (*alliancedomain.Member, error)
	AddOfficerFunc       func(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error)
	RemoveOfficerFunc    func(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error
	EligibleOwnersFunc   func(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Candidate, error)
	EligibleOfficersFunc func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) ([]alliancedomain.Candidate, error)
	EligibleMembersFunc  func(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, search string) ([]alliancedomain.Candidate, error)
}

func (f *FakeService) CreateAlliance(ctx context.Context, actor authdomain.Actor, ownerAccountID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error) {
	if f.CreateAllianceFunc != nil {
		return f.CreateAllianceFunc(ctx, actor, ownerAccountID, name, tag)
	}
	return &alliancedomain.Alliance{ID: uuid.New(), Name: name, Tag: tag}, nil
}

func (f *FakeService) UpdateAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, name, tag string) (*alliancedomain.Alliance, error) {
	if f.UpdateAllianceFunc != nil {
		return f.UpdateAllianceFunc(ctx, actor, allianceID, name, tag)
	}
	return &alliancedomain.Alliance{ID: allianceID, Name: name, Tag: tag}, nil
}

func (f *FakeService) DeleteAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) error {
	if f.DeleteAllianceFunc != nil {
		return f.DeleteAllianceFunc(ctx, actor, allianceID)
	}
	return nil
}

func (f *FakeService) ListAlliances(ctx context.Context) ([]alliancedomain.Summary, error) {
	if f.ListAlliancesFunc != nil {
		return f.ListAlliancesFunc(ctx)
	}
	return []alliancedomain.Summary{}, nil
}

func (f *FakeService) ListMyAlliances(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Summary, error) {
	if f.ListMyAlliancesFunc != nil {
		return f.ListMyAlliancesFunc(ctx, actor)
	}
	return []alliancedomain.Summary{}, nil
}

func (f *FakeService) GetAlliance(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) (*alliancedomain.Alliance, error) {
	if f.GetAllianceFunc != nil {
		return f.GetAllianceFunc(ctx, actor, allianceID)
	}
	return &alliancedomain.Alliance{ID: allianceID}, nil
}

func (f *FakeService) AddMember(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error) {
	if f.AddMemberFunc != nil {
		return f.AddMemberFunc(ctx, actor, allianceID, accountID)
	}
	return &alliancedomain.Member{AccountID: accountID}, nil
}

func (f *FakeService) RemoveMember(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error {
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, actor, allianceID, accountID)
	}
	return nil
}

func (f *FakeService) LeaveAlliance(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error {
	if f.LeaveAllianceFunc != nil {
		return f.LeaveAllianceFunc(ctx, actor, allianceID, accountID)
	}
	return nil
}

func (f *FakeService) SetMemberGroup(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID, group *int) (*alliancedomain.Member, error) {
	if f.SetMemberGroupFunc != nil {
		return f.SetMemberGroupFunc(ctx, actor, allianceID, accountID, group)
	}
	return &alliancedomain.Member{AccountID: accountID, Group: group}, nil
}

func (f *FakeService) AddOfficer(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) (*alliancedomain.Member, error) {
	if f.AddOfficerFunc != nil {
		return f.AddOfficerFunc(ctx, actor, allianceID, accountID)
	}
	return &alliancedomain.Member{AccountID: accountID, IsOfficer: true}, nil
}

func (f *FakeService) RemoveOfficer(ctx context.Context, actor authdomain.Actor, allianceID, accountID uuid.UUID) error {
	if f.RemoveOfficerFunc != nil {
		return f.RemoveOfficerFunc(ctx, actor, allianceID, accountID)
	}
	return nil
}

func (f *FakeService) EligibleOwners(ctx context.Context, actor authdomain.Actor) ([]alliancedomain.Candidate, error) {
	if f.EligibleOwnersFunc != nil {
		return f.EligibleOwnersFunc(ctx, actor)
	}
	return []alliancedomain.Candidate{}, nil
}

func (f *FakeService) EligibleOfficers(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID) ([]alliancedomain.Candidate, error) {
	if f.EligibleOfficersFunc != nil {
		return f.EligibleOfficersFunc(ctx, actor, allianceID)
	}
	return []alliancedomain.Candidate{}, nil
}

func (f *FakeService) EligibleMembers(ctx context.Context, actor authdomain.Actor, allianceID uuid.UUID, search string) ([]alliancedomain.Candidate, error) {
	if f.EligibleMembersFunc != nil {
		return f.EligibleMembersFunc(ctx, actor, allianceID, search)
	}
	return []alliancedomain.Candidate{}, nil
}
