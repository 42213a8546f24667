package appearance

import (
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Choice is one selectable value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ColorPreset is a named brand color.
type ColorPreset struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Preset is a complete, named appearance configuration.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Config      *Config `json:"config"`
}

// TemplateChoices lists the selectable document templates.
func TemplateChoices() []Choice {
	return []Choice{
		{Value: string(TemplateModern), Label: "Moderne"},
		{Value: string(TemplateClassic), Label: "Classique"},
		{Value: string(TemplateMinimal), Label: "Minimal"},
	}
}

// ColorPresets lists the suggested brand colors.
func ColorPresets() []ColorPreset {
	return []ColorPreset{
		{Name: "Bleu Benaya", Value: "#1B333F"},
		{Name: "Bleu Roi", Value: "#1E40AF"},
		{Name: "Vert Émeraude", Value: "#047857"},
		{Name: "Rouge Rubis", Value: "#B91C1C"},
		{Name: "Violet Améthyste", Value: "#7E22CE"},
		{Name: "Orange Mandarine", Value: "#C2410C"},
	}
}

// LogoPositionChoices lists the selectable logo placements.
func LogoPositionChoices() []Choice {
	return []Choice{
		{Value: string(LogoLeft), Label: "Gauche"},
		{Value: string(LogoCenter), Label: "Centre"},
		{Value: string(LogoRight), Label: "Droite"},
	}
}

// TableStyleChoices lists the selectable table styles.
func TableStyleChoices() []Choice {
	return []Choice{
		{Value: "striped", Label: "Lignes alternées"},
		{Value: "bordered", Label: "Bordures complètes"},
		{Value: "minimal", Label: "Minimal"},
	}
}

// preset builds a named preset on top of the default configuration.
// Presets are templates, not rows: identity and timestamps are zeroed.
func preset(name, description string, mutate func(*Config)) Preset {
	cfg := DefaultConfig(id.Nil())
	cfg.ID = id.Nil()
	cfg.CreatedAt = time.Time{}
	cfg.UpdatedAt = time.Time{}
	mutate(cfg)
	return Preset{Name: name, Description: description, Config: cfg}
}

// Presets returns the complete predefined appearance models keyed by
// template.
func Presets() map[Template]Preset {
	return map[Template]Preset{
		TemplateModern: preset("Moderne",
			"Design moderne avec couleurs vives et espacement généreux",
			func(c *Config) {}),
		TemplateClassic: preset("Classique",
			"Style traditionnel sobre et professionnel",
			func(c *Config) {
				c.DocumentTemplate = TemplateClassic
				c.PrimaryColor = "#2C3E50"
				c.TableHeaderColor = "#ecf0f1"
				c.TableAlternateColor = "#f8f9fa"
				c.FontFamily = "Times New Roman"
				c.FontSize = 10
				c.LineSpacing = 1.2
				c.MarginTop = 30
				c.MarginRight = 25
				c.MarginBottom = 30
				c.MarginLeft = 25
			}),
		TemplateMinimal: preset("Minimal",
			"Design épuré et minimaliste",
			func(c *Config) {
				c.DocumentTemplate = TemplateMinimal
				c.PrimaryColor = "#34495E"
				c.TableHeaderColor = "#ffffff"
				c.TableAlternateColor = "#f9f9f9"
				c.ShowLogo = false
				c.ShowProjectInfo = false
				c.ShowNotes = false
				c.ShowBankDetails = false
				c.ShowPaymentDetails = false
				c.ShowLegalMentions = false
				c.LogoPosition = LogoCenter
				c.FontFamily = "Helvetica"
				c.FontSize = 9
				c.LineSpacing = 1.1
				c.MarginTop = 20
				c.MarginRight = 15
				c.MarginBottom = 20
				c.MarginLeft = 15
			}),
		TemplateElegant: preset("Élégant",
			"Design élégant avec des accents colorés",
			func(c *Config) {
				c.DocumentTemplate = TemplateElegant
				c.PrimaryColor = "#8E44AD"
				c.TableHeaderColor = "#f4f2f7"
				c.TableAlternateColor = "#faf9fc"
				c.LogoPosition = LogoRight
				c.FontFamily = "Georgia"
				c.LineSpacing = 1.4
				c.MarginTop = 28
				c.MarginRight = 22
				c.MarginBottom = 28
				c.MarginLeft = 22
			}),
		TemplateCorporate: preset("Corporate",
			"Style professionnel pour les grandes entreprises",
			func(c *Config) {
				c.DocumentTemplate = TemplateCorporate
				c.PrimaryColor = "#1ABC9C"
				c.TableHeaderColor = "#e8f6f3"
				c.TableAlternateColor = "#f4fdf9"
				c.FontFamily = "Calibri"
				c.FontSize = 10
				c.LineSpacing = 1.3
				c.MarginTop = 35
				c.MarginRight = 30
				c.MarginBottom = 35
				c.MarginLeft = 30
			}),
	}
}
