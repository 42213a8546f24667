package dto

import (
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
)

// PaymentTermRequest creates or replaces a payment term.
type PaymentTermRequest struct {
	Label       string `json:"label" binding:"required"`
	Description string `json:"description"`
	Days        int    `json:"days"`
	IsDefault   bool   `json:"isDefault"`
	IsActive    *bool  `json:"isActive"`
}

// ToTerm builds a term owned by the tenant.
func (r PaymentTermRequest) ToTerm(tenantID id.ID) *payment.Term {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &payment.Term{
		TenantID:    tenantID,
		Label:       r.Label,
		Description: r.Description,
		Days:        r.Days,
		IsDefault:   r.IsDefault,
		IsActive:    active,
	}
}

// PaymentMethodRequest creates or replaces a payment method.
type PaymentMethodRequest struct {
	MethodType  string         `json:"methodType" binding:"required"`
	Label       string         `json:"label" binding:"required"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`

	DisplayOrder int   `json:"displayOrder"`
	IsActive     *bool `json:"isActive"`

	IconName        string `json:"iconName"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	BorderColor     string `json:"borderColor"`
}

// ToMethod builds a method owned by the tenant.
func (r PaymentMethodRequest) ToMethod(tenantID id.ID) *payment.Method {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	details := r.Details
	if details == nil {
		details = map[string]any{}
	}
	return &payment.Method{
		TenantID:        tenantID,
		MethodType:      payment.MethodType(r.MethodType),
		Label:           r.Label,
		Description:     r.Description,
		Details:         details,
		DisplayOrder:    r.DisplayOrder,
		IsActive:        active,
		IconName:        r.IconName,
		BackgroundColor: r.BackgroundColor,
		TextColor:       r.TextColor,
		BorderColor:     r.BorderColor,
	}
}
