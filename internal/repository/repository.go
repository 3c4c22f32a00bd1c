package repository

import (
	"time"

	"github.com/clinicore/clinic-management-api/internal/models"
)

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// CreateWithOwner creates an organization and its OWNER membership within
	// a single transaction.
	CreateWithOwner(org *models.Organization, owner *models.Membership) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindBySlug finds an organization by slug
	FindBySlug(slug string) (*models.Organization, error)

	// FindByActiveInviteCode finds an organization whose invite code matches
	// and has not expired as of now. Collisions across organizations resolve
	// to the first match.
	FindByActiveInviteCode(code string, now time.Time) (*models.Organization, error)

	// SlugExists reports whether a slug is already taken
	SlugExists(slug string) (bool, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete deletes an organization and cascades to its memberships
	Delete(id uint64) error
}

// MembershipRepository defines the interface for membership data access
type MembershipRepository interface {
	// Upsert inserts the membership, or on (user, organization) conflict
	// resets the existing row's role and status
	Upsert(member *models.Membership) error

	// FindByID finds a membership by its primary key
	FindByID(id uint64) (*models.Membership, error)

	// FindByOrgAndUser finds the membership row for a (organization, user) pair
	FindByOrgAndUser(organizationID, userID uint64) (*models.Membership, error)

	// FindFirstByUser returns the user's first membership with its
	// organization preloaded, or gorm.ErrRecordNotFound
	FindFirstByUser(userID uint64) (*models.Membership, error)

	// ListActiveByUser lists the user's ACTIVE memberships with organizations
	// preloaded, ordered by creation time
	ListActiveByUser(userID uint64) ([]models.Membership, error)

	// ListByOrganization lists memberships in the given statuses, ordered by
	// creation time
	ListByOrganization(organizationID uint64, statuses []models.MembershipStatus) ([]models.Membership, error)

	// UpdateStatus sets the status of a membership
	UpdateStatus(id uint64, status models.MembershipStatus) error

	// UpdateStatusAndRole sets both status and role of a membership
	UpdateStatusAndRole(id uint64, status models.MembershipStatus, role models.MembershipRole) error

	// CountActiveOwners counts the user's ACTIVE OWNER memberships
	CountActiveOwners(userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users matching the given IDs; missing IDs are
	// simply absent from the result
	FindByIDs(ids []uint64) ([]models.User, error)
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// EnsureTrial inserts a TRIAL subscription for the user if none exists
	EnsureTrial(userID uint64) error

	// FindByUserID finds the user's subscription
	FindByUserID(userID uint64) (*models.Subscription, error)
}
