package dto

import (
	"github.com/shopspring/decimal"

	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
)

// VATRateRequest creates or replaces a VAT rate.
type VATRateRequest struct {
	Code        string          `json:"code" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
	IsDefault   bool            `json:"isDefault"`
	IsActive    *bool           `json:"isActive"`
}

// ToRate builds a rate owned by the tenant.
func (r VATRateRequest) ToRate(tenantID id.ID) *vat.Rate {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &vat.Rate{
		TenantID:    tenantID,
		Code:        r.Code,
		Name:        r.Name,
		Rate:        r.Rate,
		Description: r.Description,
		IsDefault:   r.IsDefault,
		IsActive:    active,
	}
}
