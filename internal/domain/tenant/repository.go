package tenant

import (
	"context"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Store is the persistence contract for the tenant aggregate.
type Store interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, tenantID id.ID) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context, f ListFilter) ([]*Tenant, error)
	Update(ctx context.Context, t *Tenant) (*Tenant, error)

	// SlugExists reports whether any other tenant already owns the slug.
	SlugExists(ctx context.Context, slug string, excludeID id.ID) (bool, error)
	// NameExists reports whether any other tenant already owns the name.
	NameExists(ctx context.Context, name string, excludeID id.ID) (bool, error)

	// UpdateSchemaState persists provisioning progress without touching
	// the rest of the row.
	UpdateSchemaState(ctx context.Context, tenantID id.ID, status SchemaStatus, progress *SchemaProgress, schemaErr string, readyAt *time.Time) error

	GetSettings(ctx context.Context, tenantID id.ID) (*Settings, error)
	UpsertSettings(ctx context.Context, s *Settings) (*Settings, error)

	GetBankInfo(ctx context.Context, tenantID id.ID) (*BankInfo, error)
	UpsertBankInfo(ctx context.Context, b *BankInfo) (*BankInfo, error)
}

// ListFilter narrows tenant listings.
type ListFilter struct {
	IsActive *bool
	Plan     *SubscriptionPlan
	Search   string
	Limit    int
	Offset   int
}
