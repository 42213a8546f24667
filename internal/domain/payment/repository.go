package payment

import (
	"context"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// TermStore is the persistence contract for payment terms.
type TermStore interface {
	ListByTenant(ctx context.Context, tenantID id.ID) ([]*Term, error)
	GetByID(ctx context.Context, tenantID, termID id.ID) (*Term, error)
	Create(ctx context.Context, t *Term) error
	Update(ctx context.Context, t *Term) (*Term, error)
	Delete(ctx context.Context, tenantID, termID id.ID) error
	ClearDefault(ctx context.Context, tenantID id.ID) error
}

// MethodStore is the persistence contract for payment methods.
// Listings are ordered by display_order, then creation time.
type MethodStore interface {
	ListByTenant(ctx context.Context, tenantID id.ID, activeOnly bool) ([]*Method, error)
	GetByID(ctx context.Context, tenantID, methodID id.ID) (*Method, error)
	Create(ctx context.Context, m *Method) error
	Update(ctx context.Context, m *Method) (*Method, error)
	Delete(ctx context.Context, tenantID, methodID id.ID) error
	CountByTenant(ctx context.Context, tenantID id.ID) (int, error)
}
