// Package numbering implements per-tenant sequential document numbering:
// configurable formats, periodic counter resets and atomic number
// consumption. Formatting and reset decisions are pure; persistence goes
// through the Store contract so the service is testable with an in-memory
// store.
package numbering

import (
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// DocumentType is the category of business document being numbered.
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeQuote      DocumentType = "quote"
	DocumentTypeOrder      DocumentType = "order"
	DocumentTypeDelivery   DocumentType = "delivery"
	DocumentTypeCreditNote DocumentType = "credit_note"
)

// DocumentTypes returns all supported document types in display order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeInvoice,
		DocumentTypeQuote,
		DocumentTypeOrder,
		DocumentTypeDelivery,
		DocumentTypeCreditNote,
	}
}

// Valid reports whether t is a supported document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeQuote, DocumentTypeOrder,
		DocumentTypeDelivery, DocumentTypeCreditNote:
		return true
	}
	return false
}

// Label returns the French display label, matching the labels the document
// services render on PDFs.
func (t DocumentType) Label() string {
	switch t {
	case DocumentTypeInvoice:
		return "Facture"
	case DocumentTypeQuote:
		return "Devis"
	case DocumentTypeOrder:
		return "Commande"
	case DocumentTypeDelivery:
		return "Bon de livraison"
	case DocumentTypeCreditNote:
		return "Avoir"
	}
	return string(t)
}

// DateFormat is a display-only hint for UIs rendering the date portion.
// The standard formatter always emits year, month, day in that order; this
// field is stored and served but never drives reordering.
type DateFormat string

const (
	DateFormatYMD DateFormat = "YYYY-MM-DD"
	DateFormatYM  DateFormat = "YYYY-MM"
	DateFormatY   DateFormat = "YYYY"
	DateFormatDMY DateFormat = "DD-MM-YYYY"
	DateFormatMDY DateFormat = "MM-DD-YYYY"
)

// Config is the numbering configuration for one (tenant, document type)
// pair. Exactly one row exists per pair; it is created lazily with
// type-specific defaults on first access.
type Config struct {
	ID           id.ID        `db:"id" json:"id"`
	TenantID     id.ID        `db:"tenant_id" json:"tenantId"`
	DocumentType DocumentType `db:"document_type" json:"documentType"`

	Prefix string `db:"prefix" json:"prefix"`
	Suffix string `db:"suffix" json:"suffix"`

	// NextNumber is the next value to assign, always >= 1.
	NextNumber int `db:"next_number" json:"nextNumber"`

	// Padding is the minimum digit width of the rendered number.
	Padding int `db:"padding" json:"padding"`

	IncludeYear  bool `db:"include_year" json:"includeYear"`
	IncludeMonth bool `db:"include_month" json:"includeMonth"`
	IncludeDay   bool `db:"include_day" json:"includeDay"`

	DateFormat DateFormat `db:"date_format" json:"dateFormat"`
	Separator  string     `db:"separator" json:"separator"`

	// CustomFormat, when non-empty, overrides the standard format entirely.
	// Placeholders: {prefix} {year} {month} {day} {number} {suffix}.
	CustomFormat string `db:"custom_format" json:"customFormat"`

	ResetYearly  bool `db:"reset_yearly" json:"resetYearly"`
	ResetMonthly bool `db:"reset_monthly" json:"resetMonthly"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// UpdatedAt anchors the reset policy: it marks the last period the
	// counter was active in. Bumped by every increment, reset and edit.
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// defaultPrefixes are the conventional French document prefixes assigned
// when a config is created lazily.
var defaultPrefixes = map[DocumentType]string{
	DocumentTypeInvoice:    "FAC",
	DocumentTypeQuote:      "DEV",
	DocumentTypeOrder:      "CMD",
	DocumentTypeDelivery:   "BL",
	DocumentTypeCreditNote: "AV",
}

// DefaultConfig returns the lazily-created configuration for a document
// type: type-specific prefix, padding 3, year included, yearly reset.
func DefaultConfig(tenantID id.ID, docType DocumentType) *Config {
	now := time.Now()
	return &Config{
		ID:           id.New(),
		TenantID:     tenantID,
		DocumentType: docType,
		Prefix:       defaultPrefixes[docType],
		NextNumber:   1,
		Padding:      3,
		IncludeYear:  true,
		DateFormat:   DateFormatYMD,
		Separator:    "-",
		ResetYearly:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Normalize fills derivable zero values so partially specified configs
// (bulk replace payloads, ad-hoc previews) behave like stored ones.
// Only unset values are filled; negatives are left for Validate to reject.
func (c *Config) Normalize() {
	if c.NextNumber == 0 {
		c.NextNumber = 1
	}
	if c.Padding == 0 {
		c.Padding = 3
	}
	if c.Separator == "" {
		c.Separator = "-"
	}
	if c.DateFormat == "" {
		c.DateFormat = DateFormatYMD
	}
}

// Validate checks invariants common to create and update paths.
func (c *Config) Validate() error {
	if !c.DocumentType.Valid() {
		return apperror.NewValidation("unsupported document type").
			WithDetail("documentType", string(c.DocumentType))
	}
	if c.NextNumber < 1 {
		return apperror.NewValidation("next number must be >= 1").
			WithDetail("nextNumber", c.NextNumber)
	}
	if c.Padding < 1 {
		return apperror.NewValidation("padding must be >= 1").
			WithDetail("padding", c.Padding)
	}
	return nil
}
