package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/storage/postgres"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// NumberingHandler serves document numbering configuration and number
// consumption endpoints. All routes are tenant-scoped.
type NumberingHandler struct {
	base    *BaseHandler
	service *numbering.Service
	audit   *postgres.AuditService
}

// NewNumberingHandler creates a numbering handler.
func NewNumberingHandler(base *BaseHandler, service *numbering.Service, audit *postgres.AuditService) *NumberingHandler {
	return &NumberingHandler{base: base, service: service, audit: audit}
}

// auditChange records a configuration change. Best effort, the request
// already succeeded.
func (h *NumberingHandler) auditChange(c *gin.Context, entityID id.ID, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, h.base.TenantID(c), "numbering_config", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "error", err)
	}
}

// List returns all numbering configs of the tenant.
// GET /numbering
func (h *NumberingHandler) List(c *gin.Context) {
	configs, err := h.service.ListConfigs(c.Request.Context(), h.base.TenantID(c))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: configs, Count: len(configs)})
}

// Get returns the config for one document type, creating it with
// defaults on first access, together with a preview of the next number.
// GET /numbering/:document_type
func (h *NumberingHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := h.base.TenantID(c)
	docType := numbering.DocumentType(c.Param("document_type"))

	cfg, err := h.service.GetConfig(ctx, tenantID, docType)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	preview, err := h.service.PreviewNext(ctx, tenantID, docType)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.NumberingDetailResponse{Config: cfg, Preview: preview})
}

// Upsert creates or replaces the config for one document type.
// POST /numbering
func (h *NumberingHandler) Upsert(c *gin.Context) {
	var req dto.NumberingConfigRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.UpsertConfig(c.Request.Context(), req.ToConfig(h.base.TenantID(c)))
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.auditChange(c, cfg.ID, postgres.AuditActionUpdate, map[string]any{
		"documentType": cfg.DocumentType,
		"prefix":       cfg.Prefix,
		"nextNumber":   cfg.NextNumber,
		"customFormat": cfg.CustomFormat,
	})
	h.base.OK(c, cfg)
}

// ReplaceAll atomically replaces every config of the tenant.
// PUT /numbering
func (h *NumberingHandler) ReplaceAll(c *gin.Context) {
	var req dto.ReplaceNumberingRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	tenantID := h.base.TenantID(c)
	configs := make([]*numbering.Config, 0, len(req.Configs))
	for _, cfgReq := range req.Configs {
		configs = append(configs, cfgReq.ToConfig(tenantID))
	}

	replaced, err := h.service.ReplaceAll(c.Request.Context(), tenantID, configs)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: replaced, Count: len(replaced)})
}

// Preview renders the next number for an ad-hoc config without touching
// persisted state. Lets UIs show the outcome of unsaved edits.
// POST /numbering/preview
func (h *NumberingHandler) Preview(c *gin.Context) {
	var req dto.NumberingConfigRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	preview, err := h.service.PreviewConfig(c.Request.Context(), req.ToConfig(h.base.TenantID(c)))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, preview)
}

// Generate consumes and returns the next document number.
// POST /numbering/:document_type/generate
func (h *NumberingHandler) Generate(c *gin.Context) {
	docType := numbering.DocumentType(c.Param("document_type"))

	number, err := h.service.GenerateNext(c.Request.Context(), h.base.TenantID(c), docType)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.GenerateNumberResponse{
		DocumentType: string(docType),
		Number:       number,
	})
}

// Increment advances the counter without formatting a number.
// PATCH /numbering/:document_type/increment
func (h *NumberingHandler) Increment(c *gin.Context) {
	docType := numbering.DocumentType(c.Param("document_type"))

	old, next, err := h.service.IncrementCounter(c.Request.Context(), h.base.TenantID(c), docType)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.IncrementCounterResponse{
		OldCounter: old,
		NewCounter: next,
	})
}

// Reset sets the counter to an explicit value.
// POST /numbering/:document_type/reset
func (h *NumberingHandler) Reset(c *gin.Context) {
	var req dto.ResetCounterRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	docType := numbering.DocumentType(c.Param("document_type"))

	if err := h.service.ResetCounter(c.Request.Context(), h.base.TenantID(c), docType, req.Value); err != nil {
		h.base.Error(c, err)
		return
	}

	h.auditChange(c, id.Nil(), postgres.AuditActionReset, map[string]any{
		"documentType": docType,
		"value":        req.Value,
	})
	h.base.Success(c, "counter reset")
}
