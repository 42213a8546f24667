package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/dto"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/storage/postgres"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// AppearanceHandler serves document appearance configuration and the
// static choice catalogs backing the configuration UI.
type AppearanceHandler struct {
	base    *BaseHandler
	service *appearance.Service
	audit   *postgres.AuditService
}

// NewAppearanceHandler creates an appearance handler.
func NewAppearanceHandler(base *BaseHandler, service *appearance.Service, audit *postgres.AuditService) *AppearanceHandler {
	return &AppearanceHandler{base: base, service: service, audit: audit}
}

func (h *AppearanceHandler) auditChange(c *gin.Context, cfg *appearance.Config, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, h.base.TenantID(c), "appearance_config", cfg.ID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "error", err)
	}
}

// Get returns the tenant's appearance config, falling back to defaults
// when nothing was saved yet.
// GET /appearance
func (h *AppearanceHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), h.base.TenantID(c))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, cfg)
}

// Update applies partial appearance changes.
// PATCH /appearance
func (h *AppearanceHandler) Update(c *gin.Context) {
	var req dto.UpdateAppearanceRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	cfg, err := h.service.Get(ctx, h.base.TenantID(c))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	req.ApplyTo(cfg)

	updated, err := h.service.Update(ctx, cfg)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.auditChange(c, updated, postgres.AuditActionUpdate, map[string]any{
		"documentTemplate": updated.DocumentTemplate,
		"primaryColor":     updated.PrimaryColor,
	})
	h.base.OK(c, updated)
}

// ApplyPreset replaces the config with a template preset.
// POST /appearance/apply-preset
func (h *AppearanceHandler) ApplyPreset(c *gin.Context) {
	var req dto.ApplyPresetRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.ApplyPreset(c.Request.Context(), h.base.TenantID(c), appearance.Template(req.Template))
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.auditChange(c, cfg, postgres.AuditActionApplyPreset, map[string]any{
		"template": req.Template,
	})
	h.base.OK(c, cfg)
}

// Defaults returns the out-of-the-box appearance config.
// GET /appearance/defaults
func (h *AppearanceHandler) Defaults(c *gin.Context) {
	h.base.OK(c, appearance.DefaultConfig(h.base.TenantID(c)))
}

// Templates returns the available document templates.
// GET /appearance/templates
func (h *AppearanceHandler) Templates(c *gin.Context) {
	h.base.OK(c, gin.H{"templates": appearance.TemplateChoices()})
}

// Presets returns the full preset configs per template.
// GET /appearance/presets
func (h *AppearanceHandler) Presets(c *gin.Context) {
	h.base.OK(c, gin.H{"presets": appearance.Presets()})
}

// Colors returns the suggested brand color presets.
// GET /appearance/colors
func (h *AppearanceHandler) Colors(c *gin.Context) {
	h.base.OK(c, gin.H{"colors": appearance.ColorPresets()})
}

// LogoPositions returns the available logo placements.
// GET /appearance/logo-positions
func (h *AppearanceHandler) LogoPositions(c *gin.Context) {
	h.base.OK(c, gin.H{"positions": appearance.LogoPositionChoices()})
}

// TableStyles returns the available table styles.
// GET /appearance/table-styles
func (h *AppearanceHandler) TableStyles(c *gin.Context) {
	h.base.OK(c, gin.H{"styles": appearance.TableStyleChoices()})
}
