package invitation

import (
	"context"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Store is the persistence contract for invitations.
type Store interface {
	ListByTenant(ctx context.Context, tenantID id.ID) ([]*Invitation, error)
	GetByToken(ctx context.Context, token id.ID) (*Invitation, error)
	Create(ctx context.Context, i *Invitation) error
	Update(ctx context.Context, i *Invitation) (*Invitation, error)

	// PendingExists reports whether the email already has an invitation
	// for the tenant that is neither accepted nor expired.
	PendingExists(ctx context.Context, tenantID id.ID, email string) (bool, error)
}
