package model

import "time"

type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusInactive MembershipStatus = "inactive"
)

// RoleMember is the role label written alongside an activated membership.
const RoleMember = "EXECUTIVE MEMBER"

// Firestore field names of the users/{userId} membership document. The
// webhook path writes exactly these fields with merge semantics; anything
// else on the document is preserved.
const (
	FieldMembershipStatus = "membershipStatus"
	FieldPlanID           = "planId"
	FieldMembershipStart  = "membershipStartDate"
	FieldMembershipExpiry = "membershipExpiryDate"
	FieldRole             = "role"
)

// UserMembership is the persisted membership state of one user, keyed by user
// id. Mutated only by a successful webhook event; read by the profile UI.
type UserMembership struct {
	UserID     string
	Status     MembershipStatus
	PlanID     string
	StartDate  time.Time
	ExpiryDate time.Time
	Role       string
}

// MergeFields returns the field-level merge payload for the document store.
func (m *UserMembership) MergeFields() map[string]any {
	return map[string]any{
		FieldMembershipStatus: string(m.Status),
		FieldPlanID:           m.PlanID,
		FieldMembershipStart:  m.StartDate,
		FieldMembershipExpiry: m.ExpiryDate,
		FieldRole:             m.Role,
	}
}
