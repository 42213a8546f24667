package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/usage"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
)

// UsageHandler serves tenant resource-usage endpoints.
type UsageHandler struct {
	base    *BaseHandler
	service *usage.Service
}

// NewUsageHandler creates a usage handler.
func NewUsageHandler(base *BaseHandler, service *usage.Service) *UsageHandler {
	return &UsageHandler{base: base, service: service}
}

// List returns the tenant's usage history, most recent day first.
// GET /tenants/:id/usage
func (h *UsageHandler) List(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	records, err := h.service.List(c.Request.Context(), tenantID, h.base.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: records, Count: len(records)})
}

// Record stores the metrics reported for one day.
// POST /tenants/:id/usage
func (h *UsageHandler) Record(c *gin.Context) {
	tenantID, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RecordUsageRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	stored, err := h.service.Record(c.Request.Context(), req.ToRecord(tenantID))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, stored)
}
