package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/geoip"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
)

// TenantHandler serves tenant registration, profile and onboarding
// endpoints. The composite current-tenant endpoints also pull from the
// other configuration domains so clients get one response.
type TenantHandler struct {
	base *BaseHandler

	tenants    *tenant.Service
	vatRates   *vat.Service
	payments   *payment.Service
	numbering  *numbering.Service
	appearance *appearance.Service
}

// NewTenantHandler creates a tenant handler.
func NewTenantHandler(
	base *BaseHandler,
	tenants *tenant.Service,
	vatRates *vat.Service,
	payments *payment.Service,
	numberingSvc *numbering.Service,
	appearanceSvc *appearance.Service,
) *TenantHandler {
	return &TenantHandler{
		base:       base,
		tenants:    tenants,
		vatRates:   vatRates,
		payments:   payments,
		numbering:  numberingSvc,
		appearance: appearanceSvc,
	}
}

// Create handles tenant registration.
// POST /tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	created, err := h.tenants.Create(c.Request.Context(), req.ToTenant(), geoip.ClientIP(c.Request))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, created.ID.String())
}

// List returns tenants matching the filter.
// GET /tenants
func (h *TenantHandler) List(c *gin.Context) {
	filter := tenant.ListFilter{
		Search: c.Query("search"),
		Limit:  h.base.ParseIntQuery(c, "limit", 50),
		Offset: h.base.ParseIntQuery(c, "offset", 0),
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := c.Query("plan"); v != "" {
		plan := tenant.SubscriptionPlan(v)
		filter.Plan = &plan
	}

	tenants, err := h.tenants.List(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: tenants, Count: len(tenants)})
}

// Get returns one tenant by ID.
// GET /tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.tenants.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, t)
}

// Update applies partial profile changes.
// PATCH /tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTenantRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	t, err := h.tenants.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	req.ApplyTo(t)

	updated, err := h.tenants.Update(c.Request.Context(), t)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, updated)
}

// Validate reports tenant existence and activity. Used by sibling
// services to check the X-Tenant-ID they received.
// GET /tenants/:id/validate
func (h *TenantHandler) Validate(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.tenants.Validate(c.Request.Context(), tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, result)
}

// Current returns the full configuration of the calling tenant.
// GET /tenants/current
func (h *TenantHandler) Current(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := h.base.TenantID(c)

	t, err := h.tenants.Get(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	settings, err := h.tenants.Settings(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	bankInfo, err := h.tenants.BankInfo(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	rates, err := h.vatRates.List(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	terms, err := h.payments.ListTerms(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	configs, err := h.numbering.ListConfigs(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	appearanceCfg, err := h.appearance.Get(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.CurrentTenantResponse{
		Tenant:       t,
		Settings:     settings,
		BankInfo:     bankInfo,
		VATRates:     rates,
		PaymentTerms: terms,
		Numbering:    configs,
		Appearance:   appearanceCfg,
	})
}

// UpdateCurrent applies partial updates to the profile, settings and
// bank info sections in one request, then returns the full view.
// PATCH /tenants/current
func (h *TenantHandler) UpdateCurrent(c *gin.Context) {
	var req dto.UpdateCurrentTenantRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	tenantID := h.base.TenantID(c)

	if req.Tenant != nil {
		t, err := h.tenants.Get(ctx, tenantID)
		if err != nil {
			h.base.Error(c, err)
			return
		}
		req.Tenant.ApplyTo(t)
		if _, err := h.tenants.Update(ctx, t); err != nil {
			h.base.Error(c, err)
			return
		}
	}
	if req.Settings != nil {
		settings, err := h.tenants.Settings(ctx, tenantID)
		if err != nil {
			h.base.Error(c, err)
			return
		}
		req.Settings.ApplyTo(settings)
		if _, err := h.tenants.UpdateSettings(ctx, settings); err != nil {
			h.base.Error(c, err)
			return
		}
	}
	if req.BankInfo != nil {
		bankInfo, err := h.tenants.BankInfo(ctx, tenantID)
		if err != nil {
			h.base.Error(c, err)
			return
		}
		req.BankInfo.ApplyTo(bankInfo)
		if _, err := h.tenants.UpdateBankInfo(ctx, bankInfo); err != nil {
			h.base.Error(c, err)
			return
		}
	}

	h.Current(c)
}

// SetupProgress reports the schema provisioning state.
// GET /tenants/setup-progress
func (h *TenantHandler) SetupProgress(c *gin.Context) {
	progress, err := h.tenants.GetSetupProgress(c.Request.Context(), h.base.TenantID(c))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, progress)
}

// RetrySetup restarts provisioning after a failure.
// POST /tenants/retry-setup
func (h *TenantHandler) RetrySetup(c *gin.Context) {
	if err := h.tenants.RetrySetup(c.Request.Context(), h.base.TenantID(c)); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Success(c, "La configuration a été relancée")
}
