package allianceservice

import (
	"context"
	"testing"

	alliancedomain "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/domain"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOfficer(t *testing.T) {
	t.Run("owner promotes a member", func(t *testing.T) {
		f := newAllianceFixture()
		member, err := f.svc.AddOfficer(context.Background(), f.ownerUser, f.alliance.ID, f.member.ID)
		require.NoError(t, err)
		assert.True(t, member.IsOfficer)
		assert.Contains(t, f.world.officers[f.alliance.ID], f.member.ID)
		assert.Equal(t, []string{f.topic(alliancedomain.AllianceOfficerAddedV1)}, f.publisher.Topics())
	})

	tests := []struct {
		name    string
		officer bool
		target  func(f *allianceFixture) uuid.UUID
		wantErr error
	}{
		{name: "officer cannot promote", officer: true, target: func(f *allianceFixture) uuid.UUID { return f.member.ID }, wantErr: apperrors.ErrForbidden},
		{name: "not a member", target: func(f *allianceFixture) uuid.UUID { return f.world.addAccount(uuid.New(), "Delta").ID }, wantErr: apperrors.ErrBadRequest},
		{name: "owner cannot be an officer", target: func(f *allianceFixture) uuid.UUID { return f.owner.ID }, wantErr: apperrors.ErrBadRequest},
		{name: "already an officer", target: func(f *allianceFixture) uuid.UUID { return f.officer.ID }, wantErr: apperrors.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAllianceFixture()
			actor := f.ownerUser
			if tt.officer {
				actor = f.officerUser
			}
			_, err := f.svc.AddOfficer(context.Background(), actor, f.alliance.ID, tt.target(f))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotContains(t, f.world.trace, "AddOfficer")
			assert.Empty(t, f.publisher.Topics())
		})
	}
}

func TestRemoveOfficer(t *testing.T) {
	t.Run("owner demotes an officer", func(t *testing.T) {
		f := newAllianceFixture()
		err := f.svc.RemoveOfficer(context.Background(), f.ownerUser, f.alliance.ID, f.officer.ID)
		require.NoError(t, err)
		assert.Empty(t, f.world.officers[f.alliance.ID])
		assert.True(t, f.world.accounts[f.officer.ID].InAlliance(f.alliance.ID))
		assert.Equal(t, []string{f.topic(alliancedomain.AllianceOfficerRemovedV1)}, f.publisher.Topics())
	})

	t.Run("no association", func(t *testing.T) {
		f := newAllianceFixture()
		err := f.svc.RemoveOfficer(context.Background(), f.ownerUser, f.alliance.ID, f.member.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("officer cannot demote", func(t *testing.T) {
		f := newAllianceFixture()
		err := f.svc.RemoveOfficer(context.Background(), f.officerUser, f.alliance.ID, f.officer.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Contains(t, f.world.officers[f.alliance.ID], f.officer.ID)
	})
}

func TestEligibleOwners(t *testing.T) {
	f := newAllianceFixture()
	spare := f.world.addAccount(f.ownerUser.UserID, "Golf")

	candidates, err := f.svc.EligibleOwners(context.Background(), f.ownerUser)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, spare.ID, candidates[0].AccountID)
	assert.Equal(t, "Golf", candidates[0].Pseudo)
}

func TestEligibleOfficers(t *testing.T) {
	f := newAllianceFixture()

	candidates, err := f.svc.EligibleOfficers(context.Background(), f.ownerUser, f.alliance.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, f.member.ID, candidates[0].AccountID)

	_, err = f.svc.EligibleOfficers(context.Background(), f.officerUser, f.alliance.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestEligibleMembers(t *testing.T) {
	f := newAllianceFixture()
	golf := f.world.addAccount(uuid.New(), "Golf")
	f.world.addAccount(uuid.New(), "Hotel")

	candidates, err := f.svc.EligibleMembers(context.Background(), f.officerUser, f.alliance.ID, "  go ")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, golf.ID, candidates[0].AccountID)

	all, err := f.svc.EligibleMembers(context.Background(), f.ownerUser, f.alliance.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.EligibleMembers(context.Background(), f.memberUser, f.alliance.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
