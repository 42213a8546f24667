package usage

import (
	"context"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Store is the persistence contract for usage records. Listings are
// ordered most recent day first.
type Store interface {
	ListByTenant(ctx context.Context, tenantID id.ID, limit int) ([]*Record, error)
	// Upsert inserts or replaces the record keyed by (tenant_id, date).
	Upsert(ctx context.Context, r *Record) (*Record, error)
}
