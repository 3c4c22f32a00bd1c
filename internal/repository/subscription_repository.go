package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicore/clinic-management-api/internal/models"
)

// GormSubscriptionRepository is a GORM implementation of SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// EnsureTrial inserts a TRIAL subscription for the user. A no-op when the
// user already has a subscription row of any status.
func (r *GormSubscriptionRepository) EnsureTrial(userID uint64) error {
	sub := &models.Subscription{
		UserID:   userID,
		PlanName: "trial",
		Status:   models.SubscriptionStatusTrial,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(sub).Error
}

// FindByUserID finds the user's subscription
func (r *GormSubscriptionRepository) FindByUserID(userID uint64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
