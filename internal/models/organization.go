package models

import "time"

type OrganizationStatus string

const (
	OrganizationStatusTrial  OrganizationStatus = "TRIAL"
	OrganizationStatusActive OrganizationStatus = "ACTIVE"
)

type Organization struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// Slug is globally unique and immutable after creation; collisions are
	// resolved with a numeric suffix at creation time.
	Slug                string             `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Status              OrganizationStatus `gorm:"type:varchar(20);not null;default:'TRIAL'" json:"status"`
	InviteCode          *string            `gorm:"type:varchar(16);index" json:"invite_code,omitempty"`
	InviteCodeExpiresAt *time.Time         `json:"invite_code_expires_at,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`

	// Relations
	Members []Membership `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
}
