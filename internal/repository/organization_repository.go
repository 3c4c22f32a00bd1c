package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/clinicore/clinic-management-api/internal/models"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithOwner creates the organization and its OWNER membership atomically.
func (r *GormOrganizationRepository) CreateWithOwner(org *models.Organization, owner *models.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		owner.OrganizationID = org.ID

		return tx.Create(owner).Error
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by slug
func (r *GormOrganizationRepository) FindBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByActiveInviteCode finds an organization by a non-expired invite code
func (r *GormOrganizationRepository) FindByActiveInviteCode(code string, now time.Time) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("invite_code = ? AND invite_code_expires_at > ?", code, now).
		First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// SlugExists reports whether a slug is already taken
func (r *GormOrganizationRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Organization{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization and all of its memberships in a transaction
func (r *GormOrganizationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, id).Error
	})
}
