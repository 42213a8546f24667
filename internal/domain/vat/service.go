package vat

import (
	"context"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// Service implements VAT rate management.
type Service struct {
	store Store
}

// NewService creates a VAT service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all rates of the tenant.
func (s *Service) List(ctx context.Context, tenantID id.ID) ([]*Rate, error) {
	return s.store.ListByTenant(ctx, tenantID)
}

// Create adds a rate. The code must be unique within the tenant; marking
// the rate default clears the flag on the others.
func (s *Service) Create(ctx context.Context, r *Rate) (*Rate, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	taken, err := s.store.CodeExists(ctx, r.TenantID, r.Code, r.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewDuplicate("vat rate", "code", r.Code)
	}

	if id.IsNil(r.ID) {
		r.ID = id.New()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	if r.IsDefault {
		if err := s.store.ClearDefault(ctx, r.TenantID); err != nil {
			return nil, err
		}
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update persists rate changes under the same code-uniqueness and single-
// default rules as Create.
func (s *Service) Update(ctx context.Context, r *Rate) (*Rate, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetByID(ctx, r.TenantID, r.ID); err != nil {
		return nil, err
	}
	taken, err := s.store.CodeExists(ctx, r.TenantID, r.Code, r.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewDuplicate("vat rate", "code", r.Code)
	}
	if r.IsDefault {
		if err := s.store.ClearDefault(ctx, r.TenantID); err != nil {
			return nil, err
		}
	}
	return s.store.Update(ctx, r)
}

// Delete removes a rate.
func (s *Service) Delete(ctx context.Context, tenantID, rateID id.ID) error {
	return s.store.Delete(ctx, tenantID, rateID)
}

// DefaultsForCountry returns the standard catalog for a country without
// touching tenant data.
func (s *Service) DefaultsForCountry(countryCode string) []CatalogEntry {
	return CatalogForCountry(countryCode)
}

// InitializeTenant seeds the standard rates of the tenant's country.
// Rates whose code already exists are skipped, so re-running is safe.
func (s *Service) InitializeTenant(ctx context.Context, tenantID id.ID, countryCode string) error {
	created := 0
	for _, entry := range CatalogForCountry(countryCode) {
		taken, err := s.store.CodeExists(ctx, tenantID, entry.Code, id.Nil())
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		now := time.Now()
		rate := &Rate{
			ID:          id.New(),
			TenantID:    tenantID,
			Code:        entry.Code,
			Name:        entry.Name,
			Rate:        entry.Rate,
			Description: entry.Description,
			IsDefault:   entry.IsDefault,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.Create(ctx, rate); err != nil {
			return err
		}
		created++
	}
	logger.Info(ctx, "initial vat rates created",
		"tenant_id", tenantID,
		"country", countryCode,
		"count", created,
	)
	return nil
}
