package dto

import (
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/invitation"
)

// InviteRequest creates an invitation to join the tenant.
type InviteRequest struct {
	Email     string `json:"email" binding:"required"`
	InvitedBy id.ID  `json:"invitedBy" binding:"required"`
	Role      string `json:"role"`
}

// ToInvitation maps the request onto the domain model.
func (r *InviteRequest) ToInvitation(tenantID id.ID) *invitation.Invitation {
	return &invitation.Invitation{
		TenantID:  tenantID,
		Email:     r.Email,
		InvitedBy: r.InvitedBy,
		Role:      invitation.Role(r.Role),
	}
}

// AcceptInvitationRequest settles an invitation by its token.
type AcceptInvitationRequest struct {
	Token id.ID `json:"token" binding:"required"`
}

// InvitationResponse adds the computed validity to the stored invitation.
type InvitationResponse struct {
	*invitation.Invitation
	IsValid bool `json:"isValid"`
}
