// Package invitation manages invitations to join a tenant. An invitation
// carries a single-use token and expires after a validity window unless
// accepted first.
package invitation

import (
	"net/mail"
	"strings"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Role is the role the invitee receives on acceptance.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a supported role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Validity is how long an invitation can be accepted after creation.
const Validity = 7 * 24 * time.Hour

// Invitation is one pending or settled invitation, unique per
// (tenant, email).
type Invitation struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	Email     string `db:"email" json:"email"`
	InvitedBy id.ID  `db:"invited_by" json:"invitedBy"`
	Role      Role   `db:"role" json:"role"`

	Token      id.ID      `db:"token" json:"token"`
	IsAccepted bool       `db:"is_accepted" json:"isAccepted"`
	IsExpired  bool       `db:"is_expired" json:"isExpired"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expiresAt"`
	AcceptedAt *time.Time `db:"accepted_at" json:"acceptedAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate checks invariants common to create paths.
func (i *Invitation) Validate() error {
	email := strings.TrimSpace(i.Email)
	if email == "" {
		return apperror.NewValidation("invitation email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.NewValidation("invitation email is invalid").
			WithDetail("email", i.Email)
	}
	if !i.Role.Valid() {
		return apperror.NewValidation("unsupported invitation role").
			WithDetail("role", string(i.Role))
	}
	if id.IsNil(i.InvitedBy) {
		return apperror.NewValidation("invited_by is required")
	}
	return nil
}

// IsValid reports whether the invitation can still be accepted at now.
func (i *Invitation) IsValid(now time.Time) bool {
	return !i.IsAccepted && !i.IsExpired && now.Before(i.ExpiresAt)
}
