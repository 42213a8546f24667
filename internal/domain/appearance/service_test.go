package appearance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

type memoryStore struct {
	mu      sync.Mutex
	configs map[id.ID]*Config
}

var _ Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{configs: make(map[id.ID]*Config)}
}

func (s *memoryStore) Get(_ context.Context, tenantID id.ID) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[tenantID]
	if !ok {
		return nil, apperror.NewNotFound("appearance config", tenantID)
	}
	cp := *cfg
	return &cp, nil
}

func (s *memoryStore) Upsert(_ context.Context, c *Config) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.UpdatedAt = time.Now()
	s.configs[c.TenantID] = &cp
	out := cp
	return &out, nil
}

func TestService_Get_LazyDefaults(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()
	tenantID := id.New()

	cfg, err := svc.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, cfg.TenantID)
	assert.Equal(t, TemplateModern, cfg.DocumentTemplate)

	again, err := svc.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, again.ID)
}

func TestService_Update(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()
	tenantID := id.New()

	cfg, err := svc.Get(ctx, tenantID)
	require.NoError(t, err)

	cfg.PrimaryColor = "#047857"
	cfg.FontSize = 12
	updated, err := svc.Update(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "#047857", updated.PrimaryColor)
	assert.Equal(t, 12, updated.FontSize)

	cfg.LogoSize = 300
	_, err = svc.Update(ctx, cfg)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_ApplyPreset(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()
	tenantID := id.New()

	initial, err := svc.Get(ctx, tenantID)
	require.NoError(t, err)

	applied, err := svc.ApplyPreset(ctx, tenantID, TemplateClassic)
	require.NoError(t, err)
	assert.Equal(t, TemplateClassic, applied.DocumentTemplate)
	assert.Equal(t, "#2C3E50", applied.PrimaryColor)
	assert.Equal(t, initial.ID, applied.ID)
	assert.Equal(t, tenantID, applied.TenantID)

	stored, err := svc.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, TemplateClassic, stored.DocumentTemplate)
}

func TestService_ApplyPreset_Unknown(t *testing.T) {
	svc := NewService(newMemoryStore())

	_, err := svc.ApplyPreset(context.Background(), id.New(), "vintage")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
