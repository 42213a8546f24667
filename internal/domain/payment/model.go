// Package payment manages per-tenant payment terms and payment methods.
// Method details are free-form JSON validated per method type.
package payment

import (
	"regexp"
	"strings"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Term is a payment deadline option offered on documents, for example
// "30 jours fin de mois".
type Term struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	Label       string `db:"label" json:"label"`
	Description string `db:"description" json:"description,omitempty"`
	Days        int    `db:"days" json:"days"`
	IsDefault   bool   `db:"is_default" json:"isDefault"`
	IsActive    bool   `db:"is_active" json:"isActive"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate checks invariants common to create and update paths.
func (t *Term) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return apperror.NewValidation("payment term label is required")
	}
	if t.Days < 0 {
		return apperror.NewValidation("payment term days cannot be negative").
			WithDetail("days", t.Days)
	}
	return nil
}

// MethodType is the kind of payment a method accepts.
type MethodType string

const (
	MethodBankTransfer MethodType = "bank_transfer"
	MethodCheck        MethodType = "check"
	MethodCash         MethodType = "cash"
	MethodCard         MethodType = "card"
)

// Valid reports whether t is a supported method type.
func (t MethodType) Valid() bool {
	switch t {
	case MethodBankTransfer, MethodCheck, MethodCash, MethodCard:
		return true
	}
	return false
}

// Method is one way a tenant accepts payment, rendered as a styled block
// on documents.
type Method struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	MethodType  MethodType     `db:"method_type" json:"methodType"`
	Label       string         `db:"label" json:"label"`
	Description string         `db:"description" json:"description,omitempty"`
	Details     map[string]any `db:"details" json:"details"`

	DisplayOrder int  `db:"display_order" json:"displayOrder"`
	IsActive     bool `db:"is_active" json:"isActive"`

	IconName        string `db:"icon_name" json:"iconName,omitempty"`
	BackgroundColor string `db:"background_color" json:"backgroundColor,omitempty"`
	TextColor       string `db:"text_color" json:"textColor,omitempty"`
	BorderColor     string `db:"border_color" json:"borderColor,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// Validate checks the type, the type-specific required details and the
// display colors.
func (m *Method) Validate() error {
	if !m.MethodType.Valid() {
		return apperror.NewValidation("unsupported payment method type").
			WithDetail("methodType", string(m.MethodType))
	}
	if strings.TrimSpace(m.Label) == "" {
		return apperror.NewValidation("payment method label is required")
	}

	switch m.MethodType {
	case MethodBankTransfer:
		if detailString(m.Details, "iban") == "" {
			return apperror.NewValidation("iban is required for bank transfers")
		}
	case MethodCheck:
		if detailString(m.Details, "payable_to") == "" {
			return apperror.NewValidation("payable_to is required for checks")
		}
	}

	for field, color := range map[string]string{
		"backgroundColor": m.BackgroundColor,
		"textColor":       m.TextColor,
		"borderColor":     m.BorderColor,
	} {
		if color != "" && !hexColor.MatchString(color) {
			return apperror.NewValidation("color must be a hex value (#RRGGBB)").
				WithDetail("field", field).
				WithDetail("value", color)
		}
	}
	return nil
}

func detailString(details map[string]any, key string) string {
	if details == nil {
		return ""
	}
	s, _ := details[key].(string)
	return strings.TrimSpace(s)
}

// TypeStyle is the suggested rendering style of a method type.
type TypeStyle struct {
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	BorderColor     string `json:"border_color"`
}

// TypeInfo describes one selectable method type for configuration UIs.
type TypeInfo struct {
	Value        MethodType `json:"value"`
	Label        string     `json:"label"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	DefaultStyle TypeStyle  `json:"default_style"`
}

// MethodTypeCatalog lists the selectable method types with their display
// metadata.
func MethodTypeCatalog() []TypeInfo {
	return []TypeInfo{
		{
			Value:        MethodBankTransfer,
			Label:        "Virement bancaire",
			Description:  "Paiement par virement bancaire (IBAN, BIC)",
			Icon:         "building-bank",
			DefaultStyle: TypeStyle{BackgroundColor: "#e3f2fd", TextColor: "#1565c0", BorderColor: "#90caf9"},
		},
		{
			Value:        MethodCheck,
			Label:        "Chèque",
			Description:  "Paiement par chèque bancaire",
			Icon:         "receipt",
			DefaultStyle: TypeStyle{BackgroundColor: "#f3e5f5", TextColor: "#7b1fa2", BorderColor: "#ce93d8"},
		},
		{
			Value:        MethodCash,
			Label:        "Espèces",
			Description:  "Paiement en espèces",
			Icon:         "banknotes",
			DefaultStyle: TypeStyle{BackgroundColor: "#e8f5e8", TextColor: "#2e7d32", BorderColor: "#a5d6a7"},
		},
		{
			Value:        MethodCard,
			Label:        "Carte bancaire",
			Description:  "Paiement par carte bancaire",
			Icon:         "credit-card",
			DefaultStyle: TypeStyle{BackgroundColor: "#fff3e0", TextColor: "#ef6c00", BorderColor: "#ffcc02"},
		},
	}
}
