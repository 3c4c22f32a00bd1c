package models

import "time"

type MembershipRole string

const (
	RoleOwner     MembershipRole = "OWNER"
	RoleAdmin     MembershipRole = "ADMIN"
	RoleDentist   MembershipRole = "DENTIST"
	RoleSecretary MembershipRole = "SECRETARY"
	RoleFinance   MembershipRole = "FINANCE"
)

// IsValidRole reports whether s names one of the five membership roles.
func IsValidRole(s string) bool {
	switch MembershipRole(s) {
	case RoleOwner, RoleAdmin, RoleDentist, RoleSecretary, RoleFinance:
		return true
	}
	return false
}

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "ACTIVE"
	MembershipStatusInvited MembershipStatus = "INVITED"
	MembershipStatusRemoved MembershipStatus = "REMOVED"
)

// Membership binds a user to an organization with a role and a status.
// Rows are never deleted by member operations: REMOVED is a terminal status,
// and a later join request upserts the same row back to INVITED.
type Membership struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	OrganizationID uint64           `gorm:"not null;uniqueIndex:ux_memberships_org_user,priority:2" json:"organization_id"`
	UserID         uint64           `gorm:"not null;uniqueIndex:ux_memberships_org_user,priority:1" json:"user_id"`
	Role           MembershipRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status         MembershipStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
