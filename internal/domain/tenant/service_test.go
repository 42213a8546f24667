package tenant

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// memoryStore is an in-memory Store for tests.
type memoryStore struct {
	mu       sync.Mutex
	tenants  map[id.ID]*Tenant
	settings map[id.ID]*Settings
	bankInfo map[id.ID]*BankInfo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		tenants:  make(map[id.ID]*Tenant),
		settings: make(map[id.ID]*Settings),
		bankInfo: make(map[id.ID]*BankInfo),
	}
}

func (s *memoryStore) Create(_ context.Context, t *Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, tenantID id.ID) (*Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, apperror.NewNotFound("tenant", tenantID.String())
	}
	cp := *t
	return &cp, nil
}

func (s *memoryStore) GetBySlug(_ context.Context, slug string) (*Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("tenant", slug)
}

func (s *memoryStore) List(_ context.Context, f ListFilter) ([]*Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Tenant
	for _, t := range s.tenants {
		if f.IsActive != nil && t.IsActive != *f.IsActive {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryStore) Update(_ context.Context, t *Tenant) (*Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.ID]; !ok {
		return nil, apperror.NewNotFound("tenant", t.ID.String())
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return t, nil
}

func (s *memoryStore) SlugExists(_ context.Context, slug string, excludeID id.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.Slug == slug && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) NameExists(_ context.Context, name string, excludeID id.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) UpdateSchemaState(_ context.Context, tenantID id.ID, status SchemaStatus, progress *SchemaProgress, schemaErr string, readyAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return apperror.NewNotFound("tenant", tenantID.String())
	}
	t.SchemaStatus = status
	t.SchemaProgress = progress
	t.SchemaError = schemaErr
	if readyAt != nil {
		t.SchemaCreatedAt = readyAt
	}
	return nil
}

func (s *memoryStore) GetSettings(_ context.Context, tenantID id.ID) (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.settings[tenantID]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, apperror.NewNotFound("tenant settings", tenantID.String())
}

func (s *memoryStore) UpsertSettings(_ context.Context, settings *Settings) (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *settings
	s.settings[settings.TenantID] = &cp
	return settings, nil
}

func (s *memoryStore) GetBankInfo(_ context.Context, tenantID id.ID) (*BankInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bankInfo[tenantID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, apperror.NewNotFound("tenant bank info", tenantID.String())
}

func (s *memoryStore) UpsertBankInfo(_ context.Context, info *BankInfo) (*BankInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *info
	s.bankInfo[info.TenantID] = &cp
	return info, nil
}

var _ Store = (*memoryStore)(nil)

// stubLocator returns a fixed location.
type stubLocator struct {
	loc *Location
}

func (l *stubLocator) Locate(context.Context, string) *Location { return l.loc }

// recordingProvisioner records Start calls.
type recordingProvisioner struct {
	mu      sync.Mutex
	started []id.ID
}

func (p *recordingProvisioner) Start(tenantID id.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, tenantID)
}

// recordingInitializer records InitializeTenant calls.
type recordingInitializer struct {
	calls []string
}

func (i *recordingInitializer) InitializeTenant(_ context.Context, _ id.ID, countryCode string) error {
	i.calls = append(i.calls, countryCode)
	return nil
}

func TestService_Create(t *testing.T) {
	store := newMemoryStore()
	prov := &recordingProvisioner{}
	init := &recordingInitializer{}
	locator := &stubLocator{loc: &Location{
		CountryCode: "MA",
		Timezone:    "Africa/Casablanca",
		Currency:    "MAD",
		Language:    "fr",
	}}
	svc := NewService(store, locator, prov, init)

	created, err := svc.Create(context.Background(), NewTenant("Benaya BTP"), "41.142.10.5")
	require.NoError(t, err)

	assert.Equal(t, "benaya-btp", created.Slug)
	require.NotNil(t, created.TrialEndDate)

	// Settings seeded from the resolved location.
	settings, err := store.GetSettings(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Africa/Casablanca", settings.Timezone)
	assert.Equal(t, "MAD", settings.Currency)

	assert.Equal(t, []string{"MA"}, init.calls)
	assert.Equal(t, []id.ID{created.ID}, prov.started)
}

func TestService_Create_DuplicateName(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	_, err := svc.Create(context.Background(), NewTenant("Benaya"), "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), NewTenant("Benaya"), "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestService_Create_SlugCollision(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	// Different names that slugify identically.
	first, err := svc.Create(context.Background(), NewTenant("Benaya BTP"), "")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), NewTenant("Benaya  BTP"), "")
	require.NoError(t, err)
	third, err := svc.Create(context.Background(), NewTenant("Benaya-BTP"), "")
	require.NoError(t, err)

	assert.Equal(t, "benaya-btp", first.Slug)
	assert.Equal(t, "benaya-btp-1", second.Slug)
	assert.Equal(t, "benaya-btp-2", third.Slug)
}

func TestService_Validate(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	created, err := svc.Create(context.Background(), NewTenant("Validée"), "")
	require.NoError(t, err)

	result, err := svc.Validate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, result.Exists)
	assert.True(t, result.IsActive)
	assert.Equal(t, "Validée", result.Name)

	// Unknown tenant is not an error, just exists=false.
	missing, err := svc.Validate(context.Background(), id.New())
	require.NoError(t, err)
	assert.False(t, missing.Exists)
}

func TestService_Exists(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	created, err := svc.Create(context.Background(), NewTenant("Active"), "")
	require.NoError(t, err)
	assert.NoError(t, svc.Exists(context.Background(), created.ID))

	assert.True(t, apperror.IsNotFound(svc.Exists(context.Background(), id.New())))

	created.IsActive = false
	_, err = store.Update(context.Background(), created)
	require.NoError(t, err)

	err = svc.Exists(context.Background(), created.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestService_Settings_LazyDefaults(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	created, err := svc.Create(context.Background(), NewTenant("Sans Géo"), "")
	require.NoError(t, err)

	// Create without a locator already seeded defaults; drop them to
	// exercise the lazy path.
	delete(store.settings, created.ID)

	settings, err := svc.Settings(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", settings.Timezone)
	assert.Equal(t, "EUR", settings.Currency)

	// Second read returns the stored row.
	again, err := svc.Settings(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestService_BankInfo_LazyCreate(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	created, err := svc.Create(context.Background(), NewTenant("Banque"), "")
	require.NoError(t, err)

	info, err := svc.BankInfo(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, info.TenantID)
	assert.Empty(t, info.IBAN)

	info.IBAN = "FR7630006000011234567890189"
	updated, err := svc.UpdateBankInfo(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, "FR7630006000011234567890189", updated.IBAN)
}

func TestService_RetrySetup(t *testing.T) {
	store := newMemoryStore()
	prov := &recordingProvisioner{}
	svc := NewService(store, nil, prov)

	created, err := svc.Create(context.Background(), NewTenant("Retry"), "")
	require.NoError(t, err)
	startsAfterCreate := len(prov.started)

	// pending is retryable
	require.NoError(t, svc.RetrySetup(context.Background(), created.ID))
	assert.Len(t, prov.started, startsAfterCreate+1)

	// error is retryable
	require.NoError(t, store.UpdateSchemaState(context.Background(), created.ID, SchemaError, nil, "boom", nil))
	require.NoError(t, svc.RetrySetup(context.Background(), created.ID))

	// ready is not
	require.NoError(t, store.UpdateSchemaState(context.Background(), created.ID, SchemaReady, nil, "", nil))
	err = svc.RetrySetup(context.Background(), created.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestService_Update_KeepsSlug(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil, nil)

	created, err := svc.Create(context.Background(), NewTenant("Ancien Nom"), "")
	require.NoError(t, err)

	created.Name = "Nouveau Nom"
	updated, err := svc.Update(context.Background(), created)
	require.NoError(t, err)

	assert.Equal(t, "Nouveau Nom", updated.Name)
	assert.Equal(t, "ancien-nom", updated.Slug)
}
