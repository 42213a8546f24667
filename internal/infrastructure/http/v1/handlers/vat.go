package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/vat"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
)

// VATHandler serves per-tenant VAT rate endpoints.
type VATHandler struct {
	base    *BaseHandler
	service *vat.Service
}

// NewVATHandler creates a VAT handler.
func NewVATHandler(base *BaseHandler, service *vat.Service) *VATHandler {
	return &VATHandler{base: base, service: service}
}

// List returns the tenant's VAT rates.
// GET /vat-rates
func (h *VATHandler) List(c *gin.Context) {
	rates, err := h.service.List(c.Request.Context(), h.base.TenantID(c))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: rates, Count: len(rates)})
}

// Create adds a VAT rate.
// POST /vat-rates
func (h *VATHandler) Create(c *gin.Context) {
	var req dto.VATRateRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToRate(h.base.TenantID(c)))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, created)
}

// Update replaces a VAT rate.
// PUT /vat-rates/:id
func (h *VATHandler) Update(c *gin.Context) {
	rateID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.VATRateRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	rate := req.ToRate(h.base.TenantID(c))
	rate.ID = rateID

	updated, err := h.service.Update(c.Request.Context(), rate)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, updated)
}

// Delete removes a VAT rate.
// DELETE /vat-rates/:id
func (h *VATHandler) Delete(c *gin.Context) {
	rateID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.base.TenantID(c), rateID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// Defaults returns the seed catalog for a country.
// GET /vat-rates/defaults?country=XX
func (h *VATHandler) Defaults(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		country = vat.DefaultCatalogCountry
	}
	h.base.OK(c, gin.H{
		"country": country,
		"rates":   h.service.DefaultsForCountry(country),
	})
}
