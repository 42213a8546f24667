package dto

import (
	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
)

// CreateTenantRequest for registering a new tenant.
type CreateTenantRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain"`

	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`

	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`

	SIRET     string `json:"siret"`
	VATNumber string `json:"vatNumber"`
	LegalForm string `json:"legalForm"`
}

// ToTenant builds a new tenant aggregate from the request.
func (r CreateTenantRequest) ToTenant() *tenant.Tenant {
	t := tenant.NewTenant(r.Name)
	t.Domain = r.Domain
	t.Email = r.Email
	t.Phone = r.Phone
	t.Website = r.Website
	t.AddressLine1 = r.AddressLine1
	t.AddressLine2 = r.AddressLine2
	t.City = r.City
	t.PostalCode = r.PostalCode
	if r.Country != "" {
		t.Country = r.Country
	}
	t.SIRET = r.SIRET
	t.VATNumber = r.VATNumber
	t.LegalForm = r.LegalForm
	return t
}

// UpdateTenantRequest carries partial profile updates. Nil fields are
// left unchanged.
type UpdateTenantRequest struct {
	Name   *string `json:"name"`
	Domain *string `json:"domain"`

	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`

	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postalCode"`
	Country      *string `json:"country"`

	SIRET     *string `json:"siret"`
	VATNumber *string `json:"vatNumber"`
	LegalForm *string `json:"legalForm"`
}

// ApplyTo copies the set fields onto the tenant.
func (r UpdateTenantRequest) ApplyTo(t *tenant.Tenant) {
	setString(&t.Name, r.Name)
	setString(&t.Domain, r.Domain)
	setString(&t.Email, r.Email)
	setString(&t.Phone, r.Phone)
	setString(&t.Website, r.Website)
	setString(&t.AddressLine1, r.AddressLine1)
	setString(&t.AddressLine2, r.AddressLine2)
	setString(&t.City, r.City)
	setString(&t.PostalCode, r.PostalCode)
	setString(&t.Country, r.Country)
	setString(&t.SIRET, r.SIRET)
	setString(&t.VATNumber, r.VATNumber)
	setString(&t.LegalForm, r.LegalForm)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// UpdateSettingsRequest carries partial settings updates.
type UpdateSettingsRequest struct {
	Timezone   *string `json:"timezone"`
	Language   *string `json:"language"`
	Currency   *string `json:"currency"`
	DateFormat *string `json:"dateFormat"`

	LogoURL        *string `json:"logoUrl"`
	LogoData       *string `json:"logoData"`
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	AccentColor    *string `json:"accentColor"`

	EmailNotifications *bool `json:"emailNotifications"`
	SMSNotifications   *bool `json:"smsNotifications"`
	PushNotifications  *bool `json:"pushNotifications"`

	PasswordExpiryDays    *int  `json:"passwordExpiryDays"`
	MaxLoginAttempts      *int  `json:"maxLoginAttempts"`
	SessionTimeoutMinutes *int  `json:"sessionTimeoutMinutes"`
	Require2FA            *bool `json:"require2fa"`
}

// ApplyTo copies the set fields onto the settings.
func (r UpdateSettingsRequest) ApplyTo(s *tenant.Settings) {
	setString(&s.Timezone, r.Timezone)
	setString(&s.Language, r.Language)
	setString(&s.Currency, r.Currency)
	setString(&s.DateFormat, r.DateFormat)
	setString(&s.LogoURL, r.LogoURL)
	setString(&s.LogoData, r.LogoData)
	setString(&s.PrimaryColor, r.PrimaryColor)
	setString(&s.SecondaryColor, r.SecondaryColor)
	setString(&s.AccentColor, r.AccentColor)
	setBool(&s.EmailNotifications, r.EmailNotifications)
	setBool(&s.SMSNotifications, r.SMSNotifications)
	setBool(&s.PushNotifications, r.PushNotifications)
	setInt(&s.PasswordExpiryDays, r.PasswordExpiryDays)
	setInt(&s.MaxLoginAttempts, r.MaxLoginAttempts)
	setInt(&s.SessionTimeoutMinutes, r.SessionTimeoutMinutes)
	setBool(&s.Require2FA, r.Require2FA)
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// UpdateBankInfoRequest carries partial bank info updates.
type UpdateBankInfoRequest struct {
	IBAN     *string `json:"iban"`
	BIC      *string `json:"bic"`
	BankName *string `json:"bankName"`
}

// ApplyTo copies the set fields onto the bank info.
func (r UpdateBankInfoRequest) ApplyTo(b *tenant.BankInfo) {
	setString(&b.IBAN, r.IBAN)
	setString(&b.BIC, r.BIC)
	setString(&b.BankName, r.BankName)
}

// CurrentTenantResponse aggregates everything a frontend needs to render
// the tenant configuration screen in one request.
type CurrentTenantResponse struct {
	Tenant       *tenant.Tenant      `json:"tenant"`
	Settings     *tenant.Settings    `json:"settings"`
	BankInfo     *tenant.BankInfo    `json:"bankInfo"`
	VATRates     []*vat.Rate         `json:"vatRates"`
	PaymentTerms []*payment.Term     `json:"paymentTerms"`
	Numbering    []*numbering.Config `json:"numbering"`
	Appearance   *appearance.Config  `json:"appearance"`
}

// UpdateCurrentTenantRequest bundles the partial updates the composite
// PATCH endpoint accepts. Absent sections are untouched.
type UpdateCurrentTenantRequest struct {
	Tenant   *UpdateTenantRequest   `json:"tenant"`
	Settings *UpdateSettingsRequest `json:"settings"`
	BankInfo *UpdateBankInfoRequest `json:"bankInfo"`
}
