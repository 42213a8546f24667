// Package tenant provides the Tenant aggregate: the company profile, its
// display settings and bank details, plus the asynchronous schema
// provisioning state tracked on the tenant row.
package tenant

import (
	"regexp"
	"strings"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// SubscriptionPlan is the commercial plan a tenant is on.
type SubscriptionPlan string

const (
	PlanTrial        SubscriptionPlan = "trial"
	PlanStarter      SubscriptionPlan = "starter"
	PlanProfessional SubscriptionPlan = "professional"
	PlanEnterprise   SubscriptionPlan = "enterprise"
)

// Valid reports whether p is a known plan.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanTrial, PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

// SchemaStatus tracks the asynchronous provisioning of sibling-service
// schemas for a tenant.
type SchemaStatus string

const (
	SchemaPending  SchemaStatus = "pending"
	SchemaCreating SchemaStatus = "creating"
	SchemaReady    SchemaStatus = "ready"
	SchemaError    SchemaStatus = "error"
)

// SchemaProgress is the step-by-step provisioning progress stored as JSONB
// on the tenant row and served by the setup-progress endpoint.
type SchemaProgress struct {
	CurrentStep int       `json:"currentStep"`
	TotalSteps  int       `json:"totalSteps"`
	Message     string    `json:"message"`
	Service     string    `json:"service,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TrialDuration is how long a freshly created trial tenant stays usable.
const TrialDuration = 30 * 24 * time.Hour

// Tenant is a client company. The service owns only its configuration;
// business documents live in sibling services keyed by the tenant ID.
type Tenant struct {
	ID     id.ID  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Slug   string `db:"slug" json:"slug"`
	Domain string `db:"domain" json:"domain,omitempty"`

	Email   string `db:"email" json:"email,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Website string `db:"website" json:"website,omitempty"`

	AddressLine1 string `db:"address_line_1" json:"addressLine1,omitempty"`
	AddressLine2 string `db:"address_line_2" json:"addressLine2,omitempty"`
	City         string `db:"city" json:"city,omitempty"`
	PostalCode   string `db:"postal_code" json:"postalCode,omitempty"`
	Country      string `db:"country" json:"country"`

	SIRET     string `db:"siret" json:"siret,omitempty"`
	VATNumber string `db:"vat_number" json:"vatNumber,omitempty"`
	LegalForm string `db:"legal_form" json:"legalForm,omitempty"`

	IsActive     bool       `db:"is_active" json:"isActive"`
	IsTrial      bool       `db:"is_trial" json:"isTrial"`
	TrialEndDate *time.Time `db:"trial_end_date" json:"trialEndDate,omitempty"`

	SubscriptionPlan SubscriptionPlan `db:"subscription_plan" json:"subscriptionPlan"`
	MaxUsers         int              `db:"max_users" json:"maxUsers"`
	MaxStorageGB     int              `db:"max_storage_gb" json:"maxStorageGb"`

	SchemaStatus    SchemaStatus    `db:"schema_status" json:"schemaStatus"`
	SchemaProgress  *SchemaProgress `db:"schema_progress" json:"schemaProgress,omitempty"`
	SchemaError     string          `db:"schema_error" json:"schemaError,omitempty"`
	SchemaCreatedAt *time.Time      `db:"schema_created_at" json:"schemaCreatedAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy *id.ID    `db:"created_by" json:"createdBy,omitempty"`
}

// NewTenant creates a trial tenant with the conventional defaults.
func NewTenant(name string) *Tenant {
	now := time.Now()
	trialEnd := now.Add(TrialDuration)
	return &Tenant{
		ID:               id.New(),
		Name:             name,
		Country:          "France",
		IsActive:         true,
		IsTrial:          true,
		TrialEndDate:     &trialEnd,
		SubscriptionPlan: PlanTrial,
		MaxUsers:         5,
		MaxStorageGB:     1,
		SchemaStatus:     SchemaPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Validate checks invariants common to create and update paths.
func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return apperror.NewValidation("tenant name is required")
	}
	if !t.SubscriptionPlan.Valid() {
		return apperror.NewValidation("unknown subscription plan").
			WithDetail("subscriptionPlan", string(t.SubscriptionPlan))
	}
	return nil
}

// TrialExpired reports whether the trial period has elapsed.
func (t *Tenant) TrialExpired(now time.Time) bool {
	if !t.IsTrial || t.TrialEndDate == nil {
		return false
	}
	return now.After(*t.TrialEndDate)
}

// TrialDaysLeft returns the remaining whole trial days, never negative.
func (t *Tenant) TrialDaysLeft(now time.Time) int {
	if !t.IsTrial || t.TrialEndDate == nil {
		return 0
	}
	days := int(t.TrialEndDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// FullAddress joins the non-empty address parts for display.
func (t *Tenant) FullAddress() string {
	cityLine := strings.TrimSpace(t.PostalCode + " " + t.City)
	var parts []string
	for _, p := range []string{t.AddressLine1, t.AddressLine2, cityLine, t.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses everything outside [a-z0-9]
// into single hyphens. Uniqueness is the caller's concern.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Settings are per-tenant locale, branding, notification and security
// preferences, one row per tenant.
type Settings struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	Timezone   string `db:"timezone" json:"timezone"`
	Language   string `db:"language" json:"language"`
	Currency   string `db:"currency" json:"currency"`
	DateFormat string `db:"date_format" json:"dateFormat"`

	LogoURL        string `db:"logo_url" json:"logoUrl,omitempty"`
	LogoData       string `db:"logo_data" json:"logoData,omitempty"`
	PrimaryColor   string `db:"primary_color" json:"primaryColor"`
	SecondaryColor string `db:"secondary_color" json:"secondaryColor"`
	AccentColor    string `db:"accent_color" json:"accentColor"`

	EmailNotifications bool `db:"email_notifications" json:"emailNotifications"`
	SMSNotifications   bool `db:"sms_notifications" json:"smsNotifications"`
	PushNotifications  bool `db:"push_notifications" json:"pushNotifications"`

	PasswordExpiryDays    int  `db:"password_expiry_days" json:"passwordExpiryDays"`
	MaxLoginAttempts      int  `db:"max_login_attempts" json:"maxLoginAttempts"`
	SessionTimeoutMinutes int  `db:"session_timeout_minutes" json:"sessionTimeoutMinutes"`
	Require2FA            bool `db:"require_2fa" json:"require2fa"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultSettings returns the settings a tenant starts with when no
// geolocation hint is available.
func DefaultSettings(tenantID id.ID) *Settings {
	now := time.Now()
	return &Settings{
		ID:                    id.New(),
		TenantID:              tenantID,
		Timezone:              "Europe/Paris",
		Language:              "fr",
		Currency:              "EUR",
		DateFormat:            "DD/MM/YYYY",
		PrimaryColor:          "#007bff",
		SecondaryColor:        "#6c757d",
		AccentColor:           "#28a745",
		EmailNotifications:    true,
		PushNotifications:     true,
		PasswordExpiryDays:    90,
		MaxLoginAttempts:      5,
		SessionTimeoutMinutes: 480,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// BankInfo holds the tenant's payment coordinates printed on documents.
type BankInfo struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	IBAN     string `db:"iban" json:"iban,omitempty"`
	BIC      string `db:"bic" json:"bic,omitempty"`
	BankName string `db:"bank_name" json:"bankName,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
