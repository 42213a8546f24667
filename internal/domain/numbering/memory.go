package numbering

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// MemoryStore is an in-memory Store implementation.
// Use in unit tests and tooling to avoid database dependencies; it honors
// the same atomicity contract as the PostgreSQL store via a single mutex.
type MemoryStore struct {
	mu      sync.Mutex
	configs map[memKey]*Config
}

type memKey struct {
	tenantID id.ID
	docType  DocumentType
}

// Ensure compile-time interface compliance.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{configs: make(map[memKey]*Config)}
}

// GetOrCreate implements Store.
func (s *MemoryStore) GetOrCreate(ctx context.Context, tenantID id.ID, docType DocumentType) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey{tenantID, docType}
	if cfg, ok := s.configs[key]; ok {
		return copyConfig(cfg), nil
	}

	cfg := DefaultConfig(tenantID, docType)
	s.configs[key] = cfg
	return copyConfig(cfg), nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, tenantID id.ID, docType DocumentType) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[memKey{tenantID, docType}]
	if !ok {
		return nil, apperror.NewNotFound("numbering config", string(docType))
	}
	return copyConfig(cfg), nil
}

// ListByTenant implements Store.
func (s *MemoryStore) ListByTenant(ctx context.Context, tenantID id.ID) ([]*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Config
	for key, cfg := range s.configs {
		if key.tenantID == tenantID {
			out = append(out, copyConfig(cfg))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DocumentType < out[j].DocumentType
	})
	return out, nil
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(ctx context.Context, cfg *Config) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyConfig(cfg)
	if id.IsNil(stored.ID) {
		stored.ID = id.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()

	s.configs[memKey{stored.TenantID, stored.DocumentType}] = stored
	return copyConfig(stored), nil
}

// ReplaceAll implements Store.
func (s *MemoryStore) ReplaceAll(ctx context.Context, tenantID id.ID, cfgs []*Config) ([]*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.configs {
		if key.tenantID == tenantID {
			delete(s.configs, key)
		}
	}

	out := make([]*Config, 0, len(cfgs))
	for _, cfg := range cfgs {
		stored := copyConfig(cfg)
		stored.TenantID = tenantID
		if id.IsNil(stored.ID) {
			stored.ID = id.New()
		}
		now := time.Now()
		stored.CreatedAt = now
		stored.UpdatedAt = now
		s.configs[memKey{tenantID, stored.DocumentType}] = stored
		out = append(out, copyConfig(stored))
	}
	return out, nil
}

// AtomicIncrement implements Store.
func (s *MemoryStore) AtomicIncrement(ctx context.Context, tenantID id.ID, docType DocumentType, now time.Time) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[memKey{tenantID, docType}]
	if !ok {
		return nil, apperror.NewNotFound("numbering config", string(docType))
	}

	if ShouldReset(cfg, now) {
		cfg.NextNumber = 1
	}

	snapshot := copyConfig(cfg)
	cfg.NextNumber++
	cfg.UpdatedAt = now
	return snapshot, nil
}

// SetCounter implements Store.
func (s *MemoryStore) SetCounter(ctx context.Context, tenantID id.ID, docType DocumentType, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[memKey{tenantID, docType}]
	if !ok {
		return apperror.NewNotFound("numbering config", string(docType))
	}
	cfg.NextNumber = value
	cfg.UpdatedAt = time.Now()
	return nil
}

func copyConfig(cfg *Config) *Config {
	c := *cfg
	return &c
}
