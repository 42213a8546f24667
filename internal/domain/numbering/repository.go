package numbering

import (
	"context"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Store owns the persisted numbering configurations, keyed by
// (tenant_id, document_type). The PostgreSQL implementation lives in the
// infrastructure layer; MemoryStore in this package backs tests and the
// seed tool.
type Store interface {
	// GetOrCreate returns the config for the pair, creating it with
	// type-specific defaults if absent. Safe under concurrent first access:
	// at most one row is ever created per pair (insert-on-conflict-do-nothing
	// then fetch).
	GetOrCreate(ctx context.Context, tenantID id.ID, docType DocumentType) (*Config, error)

	// Get returns the config or a NOT_FOUND error.
	Get(ctx context.Context, tenantID id.ID, docType DocumentType) (*Config, error)

	// ListByTenant returns all configs for a tenant, ordered by document type.
	ListByTenant(ctx context.Context, tenantID id.ID) ([]*Config, error)

	// Upsert creates or replaces the config for its (tenant, type) pair.
	Upsert(ctx context.Context, cfg *Config) (*Config, error)

	// ReplaceAll atomically swaps every config of the tenant for the given
	// set (delete then insert, one transaction).
	ReplaceAll(ctx context.Context, tenantID id.ID, cfgs []*Config) ([]*Config, error)

	// AtomicIncrement applies the reset policy and consumes one number
	// under a lock scoped to the single config row: if a reset is due the
	// counter rolls back to 1 first, then the pre-increment value is
	// returned and next_number advances by one. Concurrent callers for the
	// same pair observe strictly increasing, non-repeating values;
	// different pairs never serialize against each other. The returned
	// config snapshot carries the pre-increment NextNumber for formatting.
	AtomicIncrement(ctx context.Context, tenantID id.ID, docType DocumentType, now time.Time) (*Config, error)

	// SetCounter sets next_number to value and bumps updated_at.
	SetCounter(ctx context.Context, tenantID id.ID, docType DocumentType, value int) error
}
