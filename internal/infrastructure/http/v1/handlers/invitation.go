package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/invitation"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
)

// InvitationHandler serves tenant invitation endpoints. Acceptance is
// token-based and unscoped so the auth service can settle invitations
// without a tenant header.
type InvitationHandler struct {
	base    *BaseHandler
	service *invitation.Service
}

// NewInvitationHandler creates an invitation handler.
func NewInvitationHandler(base *BaseHandler, service *invitation.Service) *InvitationHandler {
	return &InvitationHandler{base: base, service: service}
}

// List returns all invitations of a tenant.
// GET /tenants/:id/invitations
func (h *InvitationHandler) List(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	invitations, err := h.service.List(c.Request.Context(), tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	now := time.Now()
	items := make([]dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		items = append(items, dto.InvitationResponse{Invitation: inv, IsValid: inv.IsValid(now)})
	}
	h.base.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

// Invite creates an invitation for a tenant.
// POST /tenants/:id/invite
func (h *InvitationHandler) Invite(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.InviteRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Invite(c.Request.Context(), req.ToInvitation(tenantID))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.InvitationResponse{Invitation: created, IsValid: created.IsValid(time.Now())})
}

// Accept settles an invitation by token.
// POST /invitations/accept
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	accepted, err := h.service.Accept(c.Request.Context(), req.Token)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, accepted)
}

// Revoke expires a pending invitation.
// DELETE /tenants/:id/invitations/:invitation_id
func (h *InvitationHandler) Revoke(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	invitationID, ok := h.base.ParseIDParam(c, "invitation_id")
	if !ok {
		return
	}

	if _, err := h.service.Revoke(c.Request.Context(), tenantID, invitationID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
