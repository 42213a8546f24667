// Package vat manages per-tenant VAT rates and the per-country default
// rate catalogs used to seed new tenants.
package vat

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Rate is one VAT rate of a tenant. Codes are unique per tenant.
type Rate struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	Code        string          `db:"code" json:"code"`
	Name        string          `db:"name" json:"name"`
	Rate        decimal.Decimal `db:"rate" json:"rate"`
	Description string          `db:"description" json:"description,omitempty"`
	IsDefault   bool            `db:"is_default" json:"isDefault"`
	IsActive    bool            `db:"is_active" json:"isActive"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

var maxRate = decimal.NewFromInt(100)

// Validate checks invariants common to create and update paths.
func (r *Rate) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return apperror.NewValidation("vat rate code is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return apperror.NewValidation("vat rate name is required")
	}
	if r.Rate.IsNegative() || r.Rate.GreaterThan(maxRate) {
		return apperror.NewValidation("vat rate must be between 0 and 100").
			WithDetail("rate", r.Rate.String())
	}
	return nil
}
