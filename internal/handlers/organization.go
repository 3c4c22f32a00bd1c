package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-management-api/internal/dto"
	apierrors "github.com/clinicore/clinic-management-api/internal/errors"
	"github.com/clinicore/clinic-management-api/internal/middleware"
	"github.com/clinicore/clinic-management-api/internal/services"
)

// OrganizationHandler coordinates organization-level HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization owned by the caller.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Nome deve ter pelo menos 2 caracteres")
		return
	}

	org, err := h.orgService.CreateOrganization(userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrganizationName):
			apierrors.BadRequest(c, "Nome deve ter pelo menos 2 caracteres")
		case errors.Is(err, services.ErrPlanForbidsCreation):
			apierrors.Forbidden(c, "Seu plano atual não permite criar organizações. Faça upgrade para continuar.")
		case errors.Is(err, services.ErrOwnedOrganizationLimit):
			apierrors.Forbidden(c, "Seu plano permite criar apenas 1 organização.")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   org.ID,
		"name": org.Name,
		"slug": org.Slug,
	})
}

// GetOrganization returns the organization resolved by the access middleware
// together with the caller's role.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}
	member, ok := middleware.GetMembership(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization": dto.ToOrganizationDTO(org),
		"role":         member.Role,
	})
}

// DeleteOrganization deletes the organization. Owner-only, enforced by route
// middleware.
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.orgService.DeleteOrganization(org.ID); err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			apierrors.NotFound(c, "Organização não encontrada")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Organização excluída com sucesso",
	})
}

// GetInviteCode returns the current invite code, regenerating it when
// ?force=true or when the stored code is absent or expired.
func (h *OrganizationHandler) GetInviteCode(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	force := c.Query("force") == "true"

	code, expiresAt, err := h.orgService.GetOrGenerateInviteCode(org.ID, force)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			apierrors.NotFound(c, "Organização não encontrada")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      code,
		"expiresAt": expiresAt,
	})
}
