package appearance

import (
	"context"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Service implements appearance configuration management.
type Service struct {
	store Store
}

// NewService creates an appearance service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the tenant's appearance, creating the default configuration
// on first access.
func (s *Service) Get(ctx context.Context, tenantID id.ID) (*Config, error) {
	cfg, err := s.store.Get(ctx, tenantID)
	if err == nil {
		return cfg, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	return s.store.Upsert(ctx, DefaultConfig(tenantID))
}

// Update persists appearance changes.
func (s *Service) Update(ctx context.Context, cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return s.store.Upsert(ctx, cfg)
}

// ApplyPreset replaces the tenant's appearance with a predefined model.
func (s *Service) ApplyPreset(ctx context.Context, tenantID id.ID, template Template) (*Config, error) {
	p, ok := Presets()[template]
	if !ok {
		return nil, apperror.NewValidation("unknown appearance preset").
			WithDetail("template", string(template))
	}

	current, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	next := *p.Config
	next.ID = current.ID
	next.TenantID = tenantID
	next.CreatedAt = current.CreatedAt
	return s.store.Upsert(ctx, &next)
}
