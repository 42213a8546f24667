package usage

import (
	"context"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// TenantDirectory validates tenant existence before usage is read or
// recorded. Implemented by the tenant domain service.
type TenantDirectory interface {
	// Exists returns a NOT_FOUND error when the tenant is unknown.
	Exists(ctx context.Context, tenantID id.ID) error
}

// defaultHistoryLimit caps history reads at 90 days.
const defaultHistoryLimit = 90

// Service implements usage tracking.
type Service struct {
	store   Store
	tenants TenantDirectory
	now     func() time.Time
}

// NewService creates a usage service.
func NewService(store Store, tenants TenantDirectory) *Service {
	return &Service{
		store:   store,
		tenants: tenants,
		now:     time.Now,
	}
}

// List returns the tenant's usage history, most recent day first.
func (s *Service) List(ctx context.Context, tenantID id.ID, limit int) ([]*Record, error) {
	if err := s.tenants.Exists(ctx, tenantID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return s.store.ListByTenant(ctx, tenantID, limit)
}

// Record persists the metrics for one day, replacing any earlier report
// for the same day. A zero date means today.
func (s *Service) Record(ctx context.Context, r *Record) (*Record, error) {
	if err := s.tenants.Exists(ctx, r.TenantID); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Date.IsZero() {
		r.Date = s.now()
	}
	r.Date = Day(r.Date)
	if id.IsNil(r.ID) {
		r.ID = id.New()
	}
	r.CreatedAt = s.now()
	return s.store.Upsert(ctx, r)
}
