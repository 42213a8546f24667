package appearance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

func TestDefaultConfig(t *testing.T) {
	tenantID := id.New()
	cfg := DefaultConfig(tenantID)

	assert.False(t, id.IsNil(cfg.ID))
	assert.Equal(t, tenantID, cfg.TenantID)
	assert.Equal(t, TemplateModern, cfg.DocumentTemplate)
	assert.Equal(t, "#1B333F", cfg.PrimaryColor)
	assert.True(t, cfg.ShowLogo)
	assert.Equal(t, LogoLeft, cfg.LogoPosition)
	assert.Equal(t, 100, cfg.LogoSize)
	assert.Equal(t, "Arial", cfg.FontFamily)
	assert.Equal(t, 11, cfg.FontSize)
	assert.Equal(t, 1.5, cfg.LineSpacing)
	assert.Equal(t, 25, cfg.MarginTop)
	assert.Equal(t, 20, cfg.MarginLeft)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown template", func(c *Config) { c.DocumentTemplate = "vintage" }},
		{"unknown logo position", func(c *Config) { c.LogoPosition = "top" }},
		{"logo too small", func(c *Config) { c.LogoSize = 49 }},
		{"logo too large", func(c *Config) { c.LogoSize = 201 }},
		{"bad primary color", func(c *Config) { c.PrimaryColor = "blue" }},
		{"bad table header color", func(c *Config) { c.TableHeaderColor = "#xyz" }},
		{"font too small", func(c *Config) { c.FontSize = 5 }},
		{"font too large", func(c *Config) { c.FontSize = 25 }},
		{"blank font family", func(c *Config) { c.FontFamily = "   " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(id.New())
			tt.mutate(cfg)
			err := cfg.Validate()
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestConfig_Validate_LogoSizeBounds(t *testing.T) {
	for _, size := range []int{50, 100, 200} {
		cfg := DefaultConfig(id.New())
		cfg.LogoSize = size
		assert.NoError(t, cfg.Validate(), size)
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 5)

	for _, tmpl := range []Template{TemplateModern, TemplateClassic, TemplateMinimal, TemplateElegant, TemplateCorporate} {
		p, ok := presets[tmpl]
		require.True(t, ok, string(tmpl))
		require.NotNil(t, p.Config)
		assert.Equal(t, tmpl, p.Config.DocumentTemplate, string(tmpl))
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.True(t, id.IsNil(p.Config.ID), string(tmpl))
		assert.True(t, p.Config.CreatedAt.IsZero(), string(tmpl))

		cfg := *p.Config
		cfg.ID = id.New()
		cfg.TenantID = id.New()
		assert.NoError(t, cfg.Validate(), string(tmpl))
	}

	classic := presets[TemplateClassic].Config
	assert.Equal(t, "#2C3E50", classic.PrimaryColor)
	assert.Equal(t, "Times New Roman", classic.FontFamily)

	minimal := presets[TemplateMinimal].Config
	assert.False(t, minimal.ShowLogo)
	assert.Equal(t, LogoCenter, minimal.LogoPosition)
}

func TestChoiceCatalogs(t *testing.T) {
	templates := TemplateChoices()
	require.Len(t, templates, 3)
	assert.Equal(t, string(TemplateModern), templates[0].Value)

	positions := LogoPositionChoices()
	require.Len(t, positions, 3)
	for _, c := range positions {
		assert.NotEmpty(t, c.Label, c.Value)
	}

	styles := TableStyleChoices()
	require.Len(t, styles, 3)

	colors := ColorPresets()
	require.Len(t, colors, 6)
	for _, c := range colors {
		assert.Regexp(t, `^#[0-9a-fA-F]{6}$`, c.Value, c.Name)
	}
}
