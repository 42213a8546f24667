package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/payment"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
)

// PaymentHandler serves payment term and payment method endpoints.
type PaymentHandler struct {
	base    *BaseHandler
	service *payment.Service
	tenants *tenant.Service
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(base *BaseHandler, service *payment.Service, tenants *tenant.Service) *PaymentHandler {
	return &PaymentHandler{base: base, service: service, tenants: tenants}
}

// ListTerms returns the tenant's payment terms.
// GET /payment-terms
func (h *PaymentHandler) ListTerms(c *gin.Context) {
	terms, err := h.service.ListTerms(c.Request.Context(), h.base.TenantID(c))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: terms, Count: len(terms)})
}

// CreateTerm adds a payment term.
// POST /payment-terms
func (h *PaymentHandler) CreateTerm(c *gin.Context) {
	var req dto.PaymentTermRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateTerm(c.Request.Context(), req.ToTerm(h.base.TenantID(c)))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, created)
}

// UpdateTerm replaces a payment term.
// PUT /payment-terms/:id
func (h *PaymentHandler) UpdateTerm(c *gin.Context) {
	termID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentTermRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	term := req.ToTerm(h.base.TenantID(c))
	term.ID = termID

	updated, err := h.service.UpdateTerm(c.Request.Context(), term)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, updated)
}

// DeleteTerm removes a payment term.
// DELETE /payment-terms/:id
func (h *PaymentHandler) DeleteTerm(c *gin.Context) {
	termID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTerm(c.Request.Context(), h.base.TenantID(c), termID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// ListMethods returns the tenant's payment methods.
// GET /payment-methods?active=true
func (h *PaymentHandler) ListMethods(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	methods, err := h.service.ListMethods(c.Request.Context(), h.base.TenantID(c), activeOnly)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: methods, Count: len(methods)})
}

// GetMethod returns one payment method.
// GET /payment-methods/:id
func (h *PaymentHandler) GetMethod(c *gin.Context) {
	methodID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	method, err := h.service.GetMethod(c.Request.Context(), h.base.TenantID(c), methodID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, method)
}

// CreateMethod adds a payment method.
// POST /payment-methods
func (h *PaymentHandler) CreateMethod(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateMethod(c.Request.Context(), req.ToMethod(h.base.TenantID(c)))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, created)
}

// UpdateMethod replaces a payment method.
// PUT /payment-methods/:id
func (h *PaymentHandler) UpdateMethod(c *gin.Context) {
	methodID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentMethodRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	method := req.ToMethod(h.base.TenantID(c))
	method.ID = methodID

	updated, err := h.service.UpdateMethod(c.Request.Context(), method)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, updated)
}

// DeleteMethod removes a payment method.
// DELETE /payment-methods/:id
func (h *PaymentHandler) DeleteMethod(c *gin.Context) {
	methodID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMethod(c.Request.Context(), h.base.TenantID(c), methodID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// MethodTypes returns the supported method types with display metadata.
// GET /payment-methods/types
func (h *PaymentHandler) MethodTypes(c *gin.Context) {
	h.base.OK(c, gin.H{"types": payment.MethodTypeCatalog()})
}

// CreateDefaultMethods seeds the conventional starter methods, filling
// bank details from the tenant profile.
// POST /payment-methods/defaults
func (h *PaymentHandler) CreateDefaultMethods(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := h.base.TenantID(c)

	t, err := h.tenants.Get(ctx, tenantID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	created, err := h.service.CreateDefaultMethods(ctx, tenantID, t.Name, t.FullAddress())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: created, Count: len(created)})
}
