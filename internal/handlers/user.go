package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-management-api/internal/dto"
	apierrors "github.com/clinicore/clinic-management-api/internal/errors"
	"github.com/clinicore/clinic-management-api/internal/middleware"
	"github.com/clinicore/clinic-management-api/internal/services"
)

// UserHandler serves the current-user views.
type UserHandler struct {
	authService *services.AuthService
	memService  *services.MembershipService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, memService *services.MembershipService) *UserHandler {
	return &UserHandler{
		authService: authService,
		memService:  memService,
	}
}

// GetMe returns the caller's profile with their primary organization and
// role, both null when the user belongs to no organization yet.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "")
		return
	}

	member, err := h.memService.GetPrimaryMembership(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	var organization interface{}
	var role interface{}
	if member != nil {
		organization = dto.ToOrganizationDTO(member.Organization)
		role = member.Role
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         dto.ToUserDTO(*user),
		"organization": organization,
		"role":         role,
	})
}

// GetMyOrganizations lists the organizations where the caller is an ACTIVE
// member, oldest membership first.
func (h *UserHandler) GetMyOrganizations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	memberships, err := h.memService.ListUserOrganizations(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	orgs := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgs[i] = dto.ToOrganizationWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, orgs)
}
