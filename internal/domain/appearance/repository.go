package appearance

import (
	"context"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Store is the persistence contract for appearance configs.
type Store interface {
	Get(ctx context.Context, tenantID id.ID) (*Config, error)
	Upsert(ctx context.Context, c *Config) (*Config, error)
}
