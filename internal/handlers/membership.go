package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-management-api/internal/dto"
	apierrors "github.com/clinicore/clinic-management-api/internal/errors"
	"github.com/clinicore/clinic-management-api/internal/middleware"
	"github.com/clinicore/clinic-management-api/internal/services"
)

// MembershipHandler coordinates membership-level HTTP handlers.
type MembershipHandler struct {
	memService *services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(memService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		memService: memService,
	}
}

// JoinByCode redeems an invite code as a join request for the caller.
func (h *MembershipHandler) JoinByCode(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type JoinRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Código inválido")
		return
	}

	org, err := h.memService.JoinByCode(userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInviteCode):
			apierrors.NotFound(c, "Código inválido ou expirado")
		case errors.Is(err, services.ErrAlreadyMember):
			apierrors.Conflict(c, "Você já é membro desta organização")
		case errors.Is(err, services.ErrDuplicateJoinRequest):
			apierrors.Conflict(c, "Você já tem uma solicitação pendente para esta organização")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orgName": org.Name,
		"message": "Solicitação enviada! Aguarde aprovação do responsável.",
	})
}

// ListMembers returns the organization's ACTIVE and INVITED members in
// creation order.
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	members, users, err := h.memService.ListMembers(org.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTOs(members, users))
}

// PatchMember applies an approve, reject or remove action to a membership.
// OWNER/ADMIN only, enforced by route middleware.
func (h *MembershipHandler) PatchMember(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}
	actor, ok := middleware.GetMembership(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Membro não encontrado")
		return
	}

	type PatchMemberRequest struct {
		Action string `json:"action" binding:"required,oneof=approve reject remove"`
		Role   string `json:"role"`
	}

	var req PatchMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Ação inválida")
		return
	}

	action := services.MemberAction(req.Action)

	if err := h.memService.UpdateMemberStatus(org.ID, actor.UserID, memberID, action, req.Role); err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, "Membro não encontrado")
		case errors.Is(err, services.ErrSelfAction):
			apierrors.BadRequest(c, "Não é possível alterar seu próprio membership")
		case errors.Is(err, services.ErrCannotRemoveOwner):
			apierrors.BadRequest(c, "Não é possível remover o proprietário da organização")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	var message string
	switch action {
	case services.ActionApprove:
		message = "Membro aprovado"
	case services.ActionReject:
		message = "Solicitação rejeitada"
	default:
		message = "Membro removido"
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
