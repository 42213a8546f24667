package numbering

import (
	"context"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// TenantDirectory validates tenant existence before configs are created.
// Implemented by the tenant domain service.
type TenantDirectory interface {
	// Exists returns a NOT_FOUND error when the tenant is unknown.
	Exists(ctx context.Context, tenantID id.ID) error
}

// Preview is the result of a non-mutating formatting evaluation.
type Preview struct {
	// Number is the formatted next number.
	Number string `json:"number"`
	// RawNumber is the counter value the preview was rendered with.
	RawNumber int `json:"rawNumber"`
	// Description summarizes the configured format for UIs.
	Description string `json:"description"`
}

// Service orchestrates the reset policy, the store and the formatter.
// Only GenerateNext, IncrementCounter and ResetCounter mutate counters;
// previews never touch persisted state.
type Service struct {
	store   Store
	tenants TenantDirectory
	now     func() time.Time
}

// NewService creates a numbering service.
func NewService(store Store, tenants TenantDirectory) *Service {
	return &Service{
		store:   store,
		tenants: tenants,
		now:     time.Now,
	}
}

// GetConfig returns the persisted config for the pair, creating it with
// type-specific defaults on first access.
func (s *Service) GetConfig(ctx context.Context, tenantID id.ID, docType DocumentType) (*Config, error) {
	if err := s.checkRequest(ctx, tenantID, docType); err != nil {
		return nil, err
	}
	return s.store.GetOrCreate(ctx, tenantID, docType)
}

// ListConfigs returns all numbering configs of the tenant.
func (s *Service) ListConfigs(ctx context.Context, tenantID id.ID) ([]*Config, error) {
	if err := s.tenants.Exists(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.ListByTenant(ctx, tenantID)
}

// UpsertConfig creates or replaces one config. The custom format, if any,
// must render; a broken template is rejected here so it can never reach the
// generate path unnoticed.
func (s *Service) UpsertConfig(ctx context.Context, cfg *Config) (*Config, error) {
	if err := s.tenants.Exists(ctx, cfg.TenantID); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := Format(cfg, cfg.NextNumber, s.now()); err != nil {
		return nil, err
	}
	return s.store.Upsert(ctx, cfg)
}

// ReplaceAll swaps the tenant's whole numbering configuration for the given
// set, one config per document type.
func (s *Service) ReplaceAll(ctx context.Context, tenantID id.ID, cfgs []*Config) ([]*Config, error) {
	if err := s.tenants.Exists(ctx, tenantID); err != nil {
		return nil, err
	}

	seen := make(map[DocumentType]bool, len(cfgs))
	for _, cfg := range cfgs {
		cfg.TenantID = tenantID
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if seen[cfg.DocumentType] {
			return nil, apperror.NewValidation("duplicate document type in numbering set").
				WithDetail("documentType", string(cfg.DocumentType))
		}
		seen[cfg.DocumentType] = true
	}

	return s.store.ReplaceAll(ctx, tenantID, cfgs)
}

// PreviewNext evaluates the next formatted number without consuming it.
// The reset policy is applied to the returned value but never persisted, so
// repeated previews are idempotent. A broken custom format surfaces as a
// FORMAT_ERROR here: preview doubles as template validation.
func (s *Service) PreviewNext(ctx context.Context, tenantID id.ID, docType DocumentType) (*Preview, error) {
	if err := s.checkRequest(ctx, tenantID, docType); err != nil {
		return nil, err
	}

	cfg, err := s.store.GetOrCreate(ctx, tenantID, docType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	number := cfg.NextNumber
	if ShouldReset(cfg, now) {
		number = 1
	}

	formatted, err := Format(cfg, number, now)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Number:      formatted,
		RawNumber:   number,
		Description: Describe(cfg),
	}, nil
}

// PreviewConfig renders an ad-hoc, possibly unsaved config ("try before
// you save"). The override is treated as current, so the reset policy never
// fires for it; the counter shown is the override's own next number.
func (s *Service) PreviewConfig(ctx context.Context, override *Config) (*Preview, error) {
	override.Normalize()
	if err := override.Validate(); err != nil {
		return nil, err
	}

	formatted, err := Format(override, override.NextNumber, s.now())
	if err != nil {
		return nil, err
	}

	return &Preview{
		Number:      formatted,
		RawNumber:   override.NextNumber,
		Description: Describe(override),
	}, nil
}

// GenerateNext consumes one number: reset-if-due and increment happen in a
// single atomic unit scoped to the config row, then the pre-increment value
// is formatted with the current date. A broken custom format degrades to
// the standard format here and is logged; document creation must never fail
// on a template mistake.
func (s *Service) GenerateNext(ctx context.Context, tenantID id.ID, docType DocumentType) (string, error) {
	if err := s.checkRequest(ctx, tenantID, docType); err != nil {
		return "", err
	}
	if _, err := s.store.GetOrCreate(ctx, tenantID, docType); err != nil {
		return "", err
	}

	now := s.now()
	cfg, err := s.store.AtomicIncrement(ctx, tenantID, docType, now)
	if err != nil {
		return "", err
	}

	formatted, err := Format(cfg, cfg.NextNumber, now)
	if err != nil {
		if !apperror.IsFormat(err) {
			return "", err
		}
		logger.Warn(ctx, "custom format failed, falling back to standard",
			"document_type", docType,
			"template", cfg.CustomFormat,
			"error", err,
		)
		formatted = FormatStandard(cfg, cfg.NextNumber, now)
	}

	return formatted, nil
}

// IncrementCounter advances the counter without formatting, for document
// services that only need the raw value. Returns the consumed (previous)
// value and the new stored one.
func (s *Service) IncrementCounter(ctx context.Context, tenantID id.ID, docType DocumentType) (old, next int, err error) {
	if err := s.checkRequest(ctx, tenantID, docType); err != nil {
		return 0, 0, err
	}
	if _, err := s.store.GetOrCreate(ctx, tenantID, docType); err != nil {
		return 0, 0, err
	}

	cfg, err := s.store.AtomicIncrement(ctx, tenantID, docType, s.now())
	if err != nil {
		return 0, 0, err
	}
	return cfg.NextNumber, cfg.NextNumber + 1, nil
}

// ResetCounter sets the counter to an explicit value, 1 by convention.
func (s *Service) ResetCounter(ctx context.Context, tenantID id.ID, docType DocumentType, value int) error {
	if err := s.checkRequest(ctx, tenantID, docType); err != nil {
		return err
	}
	if value < 1 {
		return apperror.NewValidation("counter value must be >= 1").
			WithDetail("value", value)
	}
	if _, err := s.store.GetOrCreate(ctx, tenantID, docType); err != nil {
		return err
	}
	return s.store.SetCounter(ctx, tenantID, docType, value)
}

func (s *Service) checkRequest(ctx context.Context, tenantID id.ID, docType DocumentType) error {
	if !docType.Valid() {
		return apperror.NewValidation("unsupported document type").
			WithDetail("documentType", string(docType))
	}
	return s.tenants.Exists(ctx, tenantID)
}
