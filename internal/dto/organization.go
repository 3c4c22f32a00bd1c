package dto

import (
	"time"

	"github.com/clinicore/clinic-management-api/internal/models"
)

// OrganizationDTO is the wire representation of an organization.
type OrganizationDTO struct {
	ID        uint64                    `json:"id"`
	Name      string                    `json:"name"`
	Slug      string                    `json:"slug"`
	Status    models.OrganizationStatus `json:"status"`
	CreatedAt time.Time                 `json:"createdAt"`
}

// OrganizationWithRoleDTO pairs an organization with the caller's role, as
// returned by the organization listing for the current user.
type OrganizationWithRoleDTO struct {
	ID     uint64                    `json:"id"`
	Name   string                    `json:"name"`
	Slug   string                    `json:"slug"`
	Status models.OrganizationStatus `json:"status"`
	Role   models.MembershipRole     `json:"role"`
}

// ToOrganizationDTO converts an organization model to its wire representation
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Status:    org.Status,
		CreatedAt: org.CreatedAt,
	}
}

// ToOrganizationWithRoleDTO converts a membership with a preloaded
// organization to the listing shape
func ToOrganizationWithRoleDTO(member models.Membership) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		ID:     member.Organization.ID,
		Name:   member.Organization.Name,
		Slug:   member.Organization.Slug,
		Status: member.Organization.Status,
		Role:   member.Role,
	}
}
