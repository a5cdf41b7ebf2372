// Package alliancedomain holds the alliance roles, capacity limits and the pure
// authority rules every alliance and defense operation goes through.
package alliancedomain

import (
	"slices"

	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/google/uuid"
)

const (
	// MaxMembers caps the accounts in one alliance, the owner included.
	MaxMembers = 30
	// MaxGroupMembers caps the accounts assigned to one battlegroup.
	MaxGroupMembers = 10
	MinGroup        = 1
	MaxGroup        = 3
)

// Role is an actor's standing in one alliance.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleOfficer Role = "officer"
	RoleMember  Role = "member"
	RoleNone    Role = "none"
)

// ValidGroup reports whether group is a battlegroup number. nil means unassigned
// and is valid.
func ValidGroup(group *int) bool {
	return group == nil || (*group >= MinGroup && *group <= MaxGroup)
}

// Hierarchy is the set of accounts holding each role in an alliance.
type Hierarchy struct {
	AllianceID uuid.UUID
	OwnerID    uuid.UUID
	OfficerIDs []uuid.UUID
	MemberIDs  []uuid.UUID
}

// IsOwner reports whether accountID owns the alliance.
func (h Hierarchy) IsOwner(accountID uuid.UUID) bool {
	return h.OwnerID == accountID
}

// IsOfficer reports whether accountID holds an officer row.
func (h Hierarchy) IsOfficer(accountID uuid.UUID) bool {
	return slices.Contains(h.OfficerIDs, accountID)
}

// IsMember reports whether accountID belongs to the alliance.
func (h Hierarchy) IsMember(accountID uuid.UUID) bool {
	return slices.Contains(h.MemberIDs, accountID)
}

// RoleOf returns the strongest role any of accountIDs holds. Owner wins over
// officer, officer over member.
func RoleOf(h Hierarchy, accountIDs []uuid.UUID) Role {
	role := RoleNone
	for _, id := range accountIDs {
		switch {
		case h.IsOwner(id):
			return RoleOwner
		case h.IsOfficer(id):
			role = RoleOfficer
		case h.IsMember(id) && role == RoleNone:
			role = RoleMember
		}
	}
	return role
}

// AssertOwner fails Forbidden unless one of accountIDs owns the alliance.
func AssertOwner(h Hierarchy, accountIDs []uuid.UUID) error {
	if RoleOf(h, accountIDs) != RoleOwner {
		return apperrors.Forbidden("only the alliance owner can do this")
	}
	return nil
}

// AssertOwnerOrOfficer fails Forbidden unless one of accountIDs is the owner or
// an officer.
func AssertOwnerOrOfficer(h Hierarchy, accountIDs []uuid.UUID) error {
	switch RoleOf(h, accountIDs) {
	case RoleOwner, RoleOfficer:
		return nil
	}
	return apperrors.Forbidden("only the alliance owner or an officer can do this")
}

// AssertCanRemoveMember applies the removal rule: the owner may remove anyone,
// an officer only plain members. Removing the owner itself is rejected by the
// caller before this runs.
func AssertCanRemoveMember(h Hierarchy, accountIDs []uuid.UUID, targetID uuid.UUID) error {
	switch RoleOf(h, accountIDs) {
	case RoleOwner:
		return nil
	case RoleOfficer:
		if h.IsOfficer(targetID) {
			return apperrors.Forbidden("officers cannot remove other officers")
		}
		return nil
	}
	return apperrors.Forbidden("only the alliance owner or an officer can remove members")
}
