package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/clinicore/clinic-management-api/internal/models"
	"github.com/clinicore/clinic-management-api/internal/repository"
)

var (
	ErrInvalidInviteCode    = errors.New("invalid or expired invite code")
	ErrAlreadyMember        = errors.New("user is already a member of this organization")
	ErrDuplicateJoinRequest = errors.New("user already has a pending request for this organization")
	ErrMemberNotFound       = errors.New("organization member not found")
	ErrSelfAction           = errors.New("cannot change your own membership")
	ErrCannotRemoveOwner    = errors.New("cannot remove the organization owner")
)

// MemberAction is an admin-initiated membership transition.
type MemberAction string

const (
	ActionApprove MemberAction = "approve"
	ActionReject  MemberAction = "reject"
	ActionRemove  MemberAction = "remove"
)

// MembershipService implements the invite-code and membership state machine:
// a valid code puts a (user, organization) pair into INVITED, and admins move
// it to ACTIVE (approve) or REMOVED (reject/remove).
type MembershipService struct {
	orgRepo  repository.OrganizationRepository
	memRepo  repository.MembershipRepository
	userRepo repository.UserRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	orgRepo repository.OrganizationRepository,
	memRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
) *MembershipService {
	return &MembershipService{
		orgRepo:  orgRepo,
		memRepo:  memRepo,
		userRepo: userRepo,
	}
}

// JoinByCode redeems an invite code as a join request. The code is trimmed
// and uppercased before lookup. A redemption always lands on (DENTIST,
// INVITED), resetting any role left over from a prior removal.
func (s *MembershipService) JoinByCode(userID uint64, code string) (*models.Organization, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	org, err := s.orgRepo.FindByActiveInviteCode(normalized, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find organization by invite code: %w", err)
	}

	existing, err := s.memRepo.FindByOrgAndUser(org.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if existing != nil {
		switch existing.Status {
		case models.MembershipStatusActive:
			return nil, ErrAlreadyMember
		case models.MembershipStatusInvited:
			return nil, ErrDuplicateJoinRequest
		}
	}

	member := &models.Membership{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           models.RoleDentist,
		Status:         models.MembershipStatusInvited,
	}

	if err := s.memRepo.Upsert(member); err != nil {
		return nil, fmt.Errorf("failed to record join request: %w", err)
	}

	return org, nil
}

// ListMembers returns the organization's ACTIVE and INVITED memberships in
// creation order, with the corresponding users keyed by ID. REMOVED rows are
// excluded but never deleted. A membership whose user record is missing is
// still listed; presentation degrades to a placeholder.
func (s *MembershipService) ListMembers(orgID uint64) ([]models.Membership, map[uint64]models.User, error) {
	statuses := []models.MembershipStatus{
		models.MembershipStatusActive,
		models.MembershipStatusInvited,
	}

	members, err := s.memRepo.ListByOrganization(orgID, statuses)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	userIDs := make([]uint64, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load member users: %w", err)
	}

	userMap := make(map[uint64]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	return members, userMap, nil
}

// UpdateMemberStatus applies an admin action to a membership. The target must
// belong to the given organization and must not be the actor's own row.
// Approve is deliberately unconditional on the current status; an invalid
// role falls back to DENTIST. Reject and remove both end in REMOVED and
// differ only in the message the handler returns. An OWNER row can never be
// rejected or removed.
func (s *MembershipService) UpdateMemberStatus(orgID, actorUserID, memberID uint64, action MemberAction, role string) error {
	target, err := s.memRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	// Prevents cross-organization tampering via guessed membership ids.
	if target.OrganizationID != orgID {
		return ErrMemberNotFound
	}

	if target.UserID == actorUserID {
		return ErrSelfAction
	}

	if action == ActionApprove {
		newRole := models.RoleDentist
		if models.IsValidRole(role) {
			newRole = models.MembershipRole(role)
		}
		if err := s.memRepo.UpdateStatusAndRole(memberID, models.MembershipStatusActive, newRole); err != nil {
			return fmt.Errorf("failed to approve member: %w", err)
		}
		return nil
	}

	if target.Role == models.RoleOwner {
		return ErrCannotRemoveOwner
	}

	if err := s.memRepo.UpdateStatus(memberID, models.MembershipStatusRemoved); err != nil {
		return fmt.Errorf("failed to update member status: %w", err)
	}
	return nil
}

// GetPrimaryMembership returns the user's oldest membership with its
// organization, or nil when the user belongs to no organization.
func (s *MembershipService) GetPrimaryMembership(userID uint64) (*models.Membership, error) {
	member, err := s.memRepo.FindFirstByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return member, nil
}

// ListUserOrganizations returns the user's ACTIVE memberships with their
// organizations, oldest first.
func (s *MembershipService) ListUserOrganizations(userID uint64) ([]models.Membership, error) {
	memberships, err := s.memRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}
