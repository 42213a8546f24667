package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// Location is a geolocation result used to seed tenant settings.
type Location struct {
	CountryCode string
	CountryName string
	Currency    string
	Timezone    string
	Language    string
	Region      string
	City        string
	PostalCode  string
}

// Locator resolves a client IP to locale defaults. Implementations must
// return a usable fallback location rather than fail on lookup errors.
type Locator interface {
	Locate(ctx context.Context, ip string) *Location
}

// Provisioner starts asynchronous schema provisioning for a tenant.
type Provisioner interface {
	Start(tenantID id.ID)
}

// Initializer seeds country-dependent defaults for a freshly created
// tenant. The vat domain registers one to create its initial rates.
type Initializer interface {
	InitializeTenant(ctx context.Context, tenantID id.ID, countryCode string) error
}

// ValidationResult is the payload of the tenant validation endpoint used
// by sibling services to authorize the X-Tenant-ID header.
type ValidationResult struct {
	TenantID id.ID  `json:"tenant_id"`
	Exists   bool   `json:"exists"`
	IsActive bool   `json:"is_active"`
	Name     string `json:"name,omitempty"`
}

// SetupProgress is the provisioning state served to onboarding UIs.
type SetupProgress struct {
	Status   SchemaStatus    `json:"status"`
	Progress *SchemaProgress `json:"progress,omitempty"`
	Error    string          `json:"error,omitempty"`
	ReadyAt  *time.Time      `json:"readyAt,omitempty"`
}

// Service implements tenant lifecycle and profile management.
type Service struct {
	store        Store
	locator      Locator
	provisioner  Provisioner
	initializers []Initializer
	now          func() time.Time
}

// NewService creates a tenant service. locator and provisioner may be nil
// in tooling contexts; initializers run in order after tenant creation.
func NewService(store Store, locator Locator, provisioner Provisioner, initializers ...Initializer) *Service {
	return &Service{
		store:        store,
		locator:      locator,
		provisioner:  provisioner,
		initializers: initializers,
		now:          time.Now,
	}
}

// Create registers a tenant: unique name, generated unique slug, 30-day
// trial, settings seeded from the caller's geolocation, then asynchronous
// schema provisioning. clientIP may be empty.
func (s *Service) Create(ctx context.Context, t *Tenant, clientIP string) (*Tenant, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.store.NameExists(ctx, t.Name, t.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewDuplicate("tenant", "name", t.Name)
	}

	if t.Slug == "" {
		slug, err := s.uniqueSlug(ctx, t.Name, t.ID)
		if err != nil {
			return nil, err
		}
		t.Slug = slug
	}

	if t.IsTrial && t.TrialEndDate == nil {
		end := s.now().Add(TrialDuration)
		t.TrialEndDate = &end
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	loc := s.locate(ctx, clientIP)
	settings := DefaultSettings(t.ID)
	if loc != nil {
		settings.Timezone = loc.Timezone
		settings.Language = loc.Language
		settings.Currency = loc.Currency
	}
	if _, err := s.store.UpsertSettings(ctx, settings); err != nil {
		logger.Error(ctx, "failed to seed tenant settings", "tenant_id", t.ID, "error", err)
	}

	countryCode := ""
	if loc != nil {
		countryCode = loc.CountryCode
	}
	for _, init := range s.initializers {
		if err := init.InitializeTenant(ctx, t.ID, countryCode); err != nil {
			logger.Error(ctx, "tenant initializer failed", "tenant_id", t.ID, "error", err)
		}
	}

	if s.provisioner != nil {
		s.provisioner.Start(t.ID)
	}

	logger.Info(ctx, "tenant created",
		"tenant_id", t.ID,
		"slug", t.Slug,
		"country", countryCode,
	)
	return t, nil
}

func (s *Service) locate(ctx context.Context, clientIP string) *Location {
	if s.locator == nil || clientIP == "" {
		return nil
	}
	return s.locator.Locate(ctx, clientIP)
}

// uniqueSlug derives a slug from the name, appending a counter until it is
// free.
func (s *Service) uniqueSlug(ctx context.Context, name string, excludeID id.ID) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "tenant"
	}
	slug := base
	for counter := 1; ; counter++ {
		taken, err := s.store.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Get returns one tenant by ID.
func (s *Service) Get(ctx context.Context, tenantID id.ID) (*Tenant, error) {
	return s.store.GetByID(ctx, tenantID)
}

// List returns tenants matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*Tenant, error) {
	return s.store.List(ctx, f)
}

// Update persists profile changes. The slug never changes after creation,
// renames only affect the display name.
func (s *Service) Update(ctx context.Context, t *Tenant) (*Tenant, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	taken, err := s.store.NameExists(ctx, t.Name, t.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewDuplicate("tenant", "name", t.Name)
	}
	return s.store.Update(ctx, t)
}

// Validate reports existence and activity for sibling services. A missing
// tenant yields exists=false, not an error.
func (s *Service) Validate(ctx context.Context, tenantID id.ID) (*ValidationResult, error) {
	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return &ValidationResult{TenantID: tenantID}, nil
		}
		return nil, err
	}
	return &ValidationResult{
		TenantID: t.ID,
		Exists:   true,
		IsActive: t.IsActive,
		Name:     t.Name,
	}, nil
}

// Exists returns nil for an active tenant, NOT_FOUND for an unknown one
// and FORBIDDEN for a deactivated one. Satisfies the tenant directory
// contract of the numbering service and the HTTP tenant middleware.
func (s *Service) Exists(ctx context.Context, tenantID id.ID) error {
	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if !t.IsActive {
		return apperror.NewForbidden("tenant is deactivated")
	}
	return nil
}

// Settings returns the tenant's settings, creating defaults on first
// access.
func (s *Service) Settings(ctx context.Context, tenantID id.ID) (*Settings, error) {
	settings, err := s.store.GetSettings(ctx, tenantID)
	if err == nil {
		return settings, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	if err := s.Exists(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.UpsertSettings(ctx, DefaultSettings(tenantID))
}

// UpdateSettings persists settings changes.
func (s *Service) UpdateSettings(ctx context.Context, settings *Settings) (*Settings, error) {
	if err := s.Exists(ctx, settings.TenantID); err != nil {
		return nil, err
	}
	return s.store.UpsertSettings(ctx, settings)
}

// BankInfo returns the tenant's bank details, creating an empty record on
// first access.
func (s *Service) BankInfo(ctx context.Context, tenantID id.ID) (*BankInfo, error) {
	info, err := s.store.GetBankInfo(ctx, tenantID)
	if err == nil {
		return info, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	if err := s.Exists(ctx, tenantID); err != nil {
		return nil, err
	}
	now := s.now()
	return s.store.UpsertBankInfo(ctx, &BankInfo{
		ID:        id.New(),
		TenantID:  tenantID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdateBankInfo persists bank detail changes.
func (s *Service) UpdateBankInfo(ctx context.Context, info *BankInfo) (*BankInfo, error) {
	if err := s.Exists(ctx, info.TenantID); err != nil {
		return nil, err
	}
	return s.store.UpsertBankInfo(ctx, info)
}

// GetSetupProgress returns the provisioning state for onboarding UIs.
func (s *Service) GetSetupProgress(ctx context.Context, tenantID id.ID) (*SetupProgress, error) {
	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &SetupProgress{
		Status:   t.SchemaStatus,
		Progress: t.SchemaProgress,
		Error:    t.SchemaError,
		ReadyAt:  t.SchemaCreatedAt,
	}, nil
}

// RetrySetup restarts provisioning for a tenant stuck in pending or
// error. Any other status is a conflict.
func (s *Service) RetrySetup(ctx context.Context, tenantID id.ID) error {
	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.SchemaStatus != SchemaError && t.SchemaStatus != SchemaPending {
		return apperror.NewConflict("schema provisioning is not retryable").
			WithDetail("status", string(t.SchemaStatus))
	}
	if err := s.store.UpdateSchemaState(ctx, tenantID, SchemaPending, nil, "", nil); err != nil {
		return err
	}
	if s.provisioner != nil {
		s.provisioner.Start(tenantID)
	}
	logger.Info(ctx, "schema provisioning retried", "tenant_id", tenantID)
	return nil
}
