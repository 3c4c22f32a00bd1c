package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicore/clinic-management-api/internal/models"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Upsert inserts the membership, or resets role and status on the existing
// (user, organization) row. Concurrent upserts for the same pair are
// serialized by the unique constraint.
func (r *GormMembershipRepository) Upsert(member *models.Membership) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "organization_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "status", "updated_at"}),
	}).Create(member).Error
}

// FindByID finds a membership by its primary key
func (r *GormMembershipRepository) FindByID(id uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByOrgAndUser finds the membership row for a (organization, user) pair
func (r *GormMembershipRepository) FindByOrgAndUser(organizationID, userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindFirstByUser returns the user's first membership with its organization
func (r *GormMembershipRepository) FindFirstByUser(userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListActiveByUser lists the user's ACTIVE memberships with organizations
func (r *GormMembershipRepository) ListActiveByUser(userID uint64) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Preload("Organization").
		Where("user_id = ? AND status = ?", userID, models.MembershipStatusActive).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListByOrganization lists memberships in the given statuses, oldest first
func (r *GormMembershipRepository) ListByOrganization(organizationID uint64, statuses []models.MembershipStatus) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Where("organization_id = ? AND status IN ?", organizationID, statuses).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// UpdateStatus sets the status of a membership
func (r *GormMembershipRepository) UpdateStatus(id uint64, status models.MembershipStatus) error {
	return r.db.Model(&models.Membership{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateStatusAndRole sets both status and role of a membership
func (r *GormMembershipRepository) UpdateStatusAndRole(id uint64, status models.MembershipStatus, role models.MembershipRole) error {
	return r.db.Model(&models.Membership{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": status,
			"role":   role,
		}).Error
}

// CountActiveOwners counts the user's ACTIVE OWNER memberships
func (r *GormMembershipRepository) CountActiveOwners(userID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Membership{}).
		Where("user_id = ? AND role = ? AND status = ?",
			userID, models.RoleOwner, models.MembershipStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
