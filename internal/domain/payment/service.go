package payment

import (
	"context"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// Service implements payment term and payment method management.
type Service struct {
	terms   TermStore
	methods MethodStore
}

// NewService creates a payment service.
func NewService(terms TermStore, methods MethodStore) *Service {
	return &Service{terms: terms, methods: methods}
}

// ListTerms returns all payment terms of the tenant.
func (s *Service) ListTerms(ctx context.Context, tenantID id.ID) ([]*Term, error) {
	return s.terms.ListByTenant(ctx, tenantID)
}

// CreateTerm adds a term; marking it default clears the flag on others.
func (s *Service) CreateTerm(ctx context.Context, t *Term) (*Term, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if id.IsNil(t.ID) {
		t.ID = id.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.IsDefault {
		if err := s.terms.ClearDefault(ctx, t.TenantID); err != nil {
			return nil, err
		}
	}
	if err := s.terms.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTerm persists term changes.
func (s *Service) UpdateTerm(ctx context.Context, t *Term) (*Term, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.terms.GetByID(ctx, t.TenantID, t.ID); err != nil {
		return nil, err
	}
	if t.IsDefault {
		if err := s.terms.ClearDefault(ctx, t.TenantID); err != nil {
			return nil, err
		}
	}
	return s.terms.Update(ctx, t)
}

// DeleteTerm removes a term.
func (s *Service) DeleteTerm(ctx context.Context, tenantID, termID id.ID) error {
	return s.terms.Delete(ctx, tenantID, termID)
}

// ListMethods returns the tenant's payment methods. activeOnly is the
// document-rendering view; configuration UIs pass false.
func (s *Service) ListMethods(ctx context.Context, tenantID id.ID, activeOnly bool) ([]*Method, error) {
	return s.methods.ListByTenant(ctx, tenantID, activeOnly)
}

// GetMethod returns one payment method.
func (s *Service) GetMethod(ctx context.Context, tenantID, methodID id.ID) (*Method, error) {
	return s.methods.GetByID(ctx, tenantID, methodID)
}

// CreateMethod adds a payment method after type-specific detail checks.
func (s *Service) CreateMethod(ctx context.Context, m *Method) (*Method, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if id.IsNil(m.ID) {
		m.ID = id.New()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.methods.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMethod persists payment method changes.
func (s *Service) UpdateMethod(ctx context.Context, m *Method) (*Method, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.methods.GetByID(ctx, m.TenantID, m.ID); err != nil {
		return nil, err
	}
	return s.methods.Update(ctx, m)
}

// DeleteMethod removes a payment method.
func (s *Service) DeleteMethod(ctx context.Context, tenantID, methodID id.ID) error {
	return s.methods.Delete(ctx, tenantID, methodID)
}

// CreateDefaultMethods seeds the conventional starter pair (bank transfer
// and check) for a tenant that has no methods yet. tenantName and
// tenantAddress personalize the check instructions.
func (s *Service) CreateDefaultMethods(ctx context.Context, tenantID id.ID, tenantName, tenantAddress string) ([]*Method, error) {
	count, err := s.methods.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.NewConflict("payment methods already exist").
			WithDetail("count", count)
	}

	now := time.Now()
	defaults := []*Method{
		{
			ID:          id.New(),
			TenantID:    tenantID,
			MethodType:  MethodBankTransfer,
			Label:       "Virement bancaire",
			Description: "Effectuez votre paiement par virement bancaire",
			Details: map[string]any{
				"iban":           "",
				"bic":            "",
				"bank_name":      "",
				"account_holder": tenantName,
			},
			DisplayOrder:    0,
			IsActive:        true,
			IconName:        "building-bank",
			BackgroundColor: "#e3f2fd",
			TextColor:       "#1565c0",
			BorderColor:     "#90caf9",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:          id.New(),
			TenantID:    tenantID,
			MethodType:  MethodCheck,
			Label:       "Chèque",
			Description: "Envoyez votre chèque à l'adresse suivante",
			Details: map[string]any{
				"payable_to":   tenantName,
				"address":      tenantAddress,
				"instructions": "Chèque à l'ordre de " + tenantName,
			},
			DisplayOrder:    1,
			IsActive:        true,
			IconName:        "receipt",
			BackgroundColor: "#f3e5f5",
			TextColor:       "#7b1fa2",
			BorderColor:     "#ce93d8",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	for _, m := range defaults {
		if err := s.methods.Create(ctx, m); err != nil {
			return nil, err
		}
	}
	logger.Info(ctx, "default payment methods created", "tenant_id", tenantID)
	return defaults, nil
}
