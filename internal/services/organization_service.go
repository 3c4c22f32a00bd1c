package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/clinicore/clinic-management-api/internal/constants"
	"github.com/clinicore/clinic-management-api/internal/models"
	"github.com/clinicore/clinic-management-api/internal/repository"
	"github.com/clinicore/clinic-management-api/internal/utils"
)

var (
	ErrOrganizationNotFound       = errors.New("organization not found")
	ErrInvalidOrganizationName    = errors.New("organization name too short")
	ErrPlanForbidsCreation        = errors.New("current plan does not allow creating organizations")
	ErrOwnedOrganizationLimit     = errors.New("plan allows owning a single organization")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	memRepo repository.MembershipRepository
	subRepo repository.SubscriptionRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(
	orgRepo repository.OrganizationRepository,
	memRepo repository.MembershipRepository,
	subRepo repository.SubscriptionRepository,
) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		memRepo: memRepo,
		subRepo: subRepo,
	}
}

// CreateOrganization creates an organization with a unique slug and its
// OWNER membership for the creator, after checking the subscription gate:
// trial accounts cannot create organizations, and paid accounts may own at
// most one.
func (s *OrganizationService) CreateOrganization(userID uint64, name string) (*models.Organization, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < constants.MinOrganizationNameLength {
		return nil, ErrInvalidOrganizationName
	}

	sub, err := s.subRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanForbidsCreation
		}
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	if sub.Status == models.SubscriptionStatusTrial {
		return nil, ErrPlanForbidsCreation
	}

	owned, err := s.memRepo.CountActiveOwners(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count owned organizations: %w", err)
	}
	if owned >= 1 {
		return nil, ErrOwnedOrganizationLimit
	}

	slug, err := s.uniqueSlug(name)
	if err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:   name,
		Slug:   slug,
		Status: models.OrganizationStatusTrial,
	}

	owner := &models.Membership{
		UserID: userID,
		Role:   models.RoleOwner,
		Status: models.MembershipStatusActive,
	}

	if err := s.orgRepo.CreateWithOwner(org, owner); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// uniqueSlug derives the base slug from the name and probes with sequential
// numeric suffixes until an unused slug is found. Two concurrent creations of
// the same name may both pass the probe; the unique constraint on slug then
// fails the later write.
func (s *OrganizationService) uniqueSlug(name string) (string, error) {
	base := utils.Slugify(name)

	for suffix := 0; ; suffix++ {
		candidate := base
		if suffix > 0 {
			candidate = fmt.Sprintf("%s-%d", base, suffix)
		}

		taken, err := s.orgRepo.SlugExists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// GetBySlug returns the organization with the given slug.
func (s *OrganizationService) GetBySlug(slug string) (*models.Organization, error) {
	org, err := s.orgRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// GetOrGenerateInviteCode returns the organization's current invite code, or
// generates a fresh one when forced, absent, or expired. New codes live for
// 24 hours.
func (s *OrganizationService) GetOrGenerateInviteCode(orgID uint64, force bool) (string, time.Time, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", time.Time{}, ErrOrganizationNotFound
		}
		return "", time.Time{}, fmt.Errorf("failed to find organization: %w", err)
	}

	now := time.Now()
	needsNew := force ||
		org.InviteCode == nil ||
		org.InviteCodeExpiresAt == nil ||
		!org.InviteCodeExpiresAt.After(now)

	if !needsNew {
		return *org.InviteCode, *org.InviteCodeExpiresAt, nil
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return "", time.Time{}, ErrInviteCodeGenerationFailed
	}
	expiresAt := now.Add(constants.InviteCodeTTL)

	org.InviteCode = &code
	org.InviteCodeExpiresAt = &expiresAt
	if err := s.orgRepo.Update(org); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to persist invite code: %w", err)
	}

	return code, expiresAt, nil
}

// DeleteOrganization removes the organization and all of its memberships.
func (s *OrganizationService) DeleteOrganization(orgID uint64) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	return nil
}
