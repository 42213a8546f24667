package vat

import (
	"context"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Store is the persistence contract for VAT rates.
type Store interface {
	ListByTenant(ctx context.Context, tenantID id.ID) ([]*Rate, error)
	GetByID(ctx context.Context, tenantID, rateID id.ID) (*Rate, error)
	Create(ctx context.Context, r *Rate) error
	Update(ctx context.Context, r *Rate) (*Rate, error)
	Delete(ctx context.Context, tenantID, rateID id.ID) error

	// CodeExists reports whether another rate of the tenant uses the code.
	CodeExists(ctx context.Context, tenantID id.ID, code string, excludeID id.ID) (bool, error)
	// ClearDefault unsets is_default on all rates of the tenant.
	ClearDefault(ctx context.Context, tenantID id.ID) error
}
