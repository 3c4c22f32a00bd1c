package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusTrial  SubscriptionStatus = "TRIAL"
	SubscriptionStatusActive SubscriptionStatus = "ACTIVE"
)

// Subscription gates organization creation: TRIAL accounts cannot create
// organizations. One row per user.
type Subscription struct {
	ID        uint64             `gorm:"primarykey" json:"id"`
	UserID    uint64             `gorm:"uniqueIndex;not null" json:"user_id"`
	PlanName  string             `gorm:"type:varchar(50);not null" json:"plan_name"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);not null;default:'TRIAL'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
