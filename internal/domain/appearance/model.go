// Package appearance manages per-tenant document appearance configuration
// and the static catalogs (templates, presets, colors) configuration UIs
// are built from.
package appearance

import (
	"regexp"
	"strings"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Template identifies a document layout family.
type Template string

const (
	TemplateModern    Template = "modern"
	TemplateClassic   Template = "classic"
	TemplateMinimal   Template = "minimal"
	TemplateElegant   Template = "elegant"
	TemplateCorporate Template = "corporate"
)

// LogoPosition is the horizontal placement of the logo in the header.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

// Config holds the full document appearance of one tenant, one row per
// tenant, created lazily with defaults on first access.
type Config struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	DocumentTemplate Template `db:"document_template" json:"documentTemplate"`
	PrimaryColor     string   `db:"primary_color" json:"primaryColor"`

	HeaderText string `db:"header_text" json:"headerText,omitempty"`
	FooterText string `db:"footer_text" json:"footerText,omitempty"`

	ShowLogo     bool         `db:"show_logo" json:"showLogo"`
	LogoPosition LogoPosition `db:"logo_position" json:"logoPosition"`
	// LogoSize is a percentage of the natural logo size, 50 to 200.
	LogoSize int `db:"logo_size" json:"logoSize"`

	ShowCompanyName    bool `db:"show_company_name" json:"showCompanyName"`
	ShowCompanyAddress bool `db:"show_company_address" json:"showCompanyAddress"`
	ShowCompanyEmail   bool `db:"show_company_email" json:"showCompanyEmail"`
	ShowCompanyPhone   bool `db:"show_company_phone" json:"showCompanyPhone"`
	ShowCompanyWebsite bool `db:"show_company_website" json:"showCompanyWebsite"`
	ShowCompanySIRET   bool `db:"show_company_siret" json:"showCompanySiret"`
	ShowClientAddress  bool `db:"show_client_address" json:"showClientAddress"`
	ShowProjectInfo    bool `db:"show_project_info" json:"showProjectInfo"`
	ShowNotes          bool `db:"show_notes" json:"showNotes"`
	ShowPaymentTerms   bool `db:"show_payment_terms" json:"showPaymentTerms"`
	ShowBankDetails    bool `db:"show_bank_details" json:"showBankDetails"`
	ShowSignatureArea  bool `db:"show_signature_area" json:"showSignatureArea"`

	FontFamily  string  `db:"font_family" json:"fontFamily"`
	FontSize    int     `db:"font_size" json:"fontSize"`
	LineSpacing float64 `db:"line_spacing" json:"lineSpacing"`

	// Margins in millimeters.
	MarginTop    int `db:"margin_top" json:"marginTop"`
	MarginRight  int `db:"margin_right" json:"marginRight"`
	MarginBottom int `db:"margin_bottom" json:"marginBottom"`
	MarginLeft   int `db:"margin_left" json:"marginLeft"`

	ShowPaymentDetails bool   `db:"show_payment_details" json:"showPaymentDetails"`
	ShowLegalMentions  bool   `db:"show_legal_mentions" json:"showLegalMentions"`
	LegalMentions      string `db:"legal_mentions" json:"legalMentions,omitempty"`

	TableHeaderColor    string `db:"table_header_color" json:"tableHeaderColor"`
	TableAlternateColor string `db:"table_alternate_color" json:"tableAlternateColor"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// Validate checks template, logo and color invariants.
func (c *Config) Validate() error {
	switch c.DocumentTemplate {
	case TemplateModern, TemplateClassic, TemplateMinimal, TemplateElegant, TemplateCorporate:
	default:
		return apperror.NewValidation("unknown document template").
			WithDetail("documentTemplate", string(c.DocumentTemplate))
	}
	switch c.LogoPosition {
	case LogoLeft, LogoCenter, LogoRight:
	default:
		return apperror.NewValidation("unknown logo position").
			WithDetail("logoPosition", string(c.LogoPosition))
	}
	if c.LogoSize < 50 || c.LogoSize > 200 {
		return apperror.NewValidation("logo size must be between 50% and 200%").
			WithDetail("logoSize", c.LogoSize)
	}
	for field, color := range map[string]string{
		"primaryColor":        c.PrimaryColor,
		"tableHeaderColor":    c.TableHeaderColor,
		"tableAlternateColor": c.TableAlternateColor,
	} {
		if color != "" && !hexColor.MatchString(color) {
			return apperror.NewValidation("color must be a hex value (#RRGGBB)").
				WithDetail("field", field).
				WithDetail("value", color)
		}
	}
	if c.FontSize < 6 || c.FontSize > 24 {
		return apperror.NewValidation("font size must be between 6 and 24").
			WithDetail("fontSize", c.FontSize)
	}
	if strings.TrimSpace(c.FontFamily) == "" {
		return apperror.NewValidation("font family is required")
	}
	return nil
}

// DefaultConfig returns the appearance a tenant starts with.
func DefaultConfig(tenantID id.ID) *Config {
	now := time.Now()
	return &Config{
		ID:                  id.New(),
		TenantID:            tenantID,
		DocumentTemplate:    TemplateModern,
		PrimaryColor:        "#1B333F",
		ShowLogo:            true,
		LogoPosition:        LogoLeft,
		LogoSize:            100,
		ShowCompanyName:     true,
		ShowCompanyAddress:  true,
		ShowCompanyEmail:    true,
		ShowCompanyPhone:    true,
		ShowCompanyWebsite:  true,
		ShowCompanySIRET:    true,
		ShowClientAddress:   true,
		ShowProjectInfo:     true,
		ShowNotes:           true,
		ShowPaymentTerms:    true,
		ShowBankDetails:     true,
		ShowSignatureArea:   true,
		FontFamily:          "Arial",
		FontSize:            11,
		LineSpacing:         1.5,
		MarginTop:           25,
		MarginRight:         20,
		MarginBottom:        25,
		MarginLeft:          20,
		ShowPaymentDetails:  true,
		ShowLegalMentions:   true,
		TableHeaderColor:    "#f8f9fa",
		TableAlternateColor: "#f2f2f2",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
