package dto

import (
	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
)

// UpdateAppearanceRequest carries partial appearance updates. Nil fields
// are left unchanged.
type UpdateAppearanceRequest struct {
	DocumentTemplate *string `json:"documentTemplate"`
	PrimaryColor     *string `json:"primaryColor"`

	HeaderText *string `json:"headerText"`
	FooterText *string `json:"footerText"`

	ShowLogo     *bool   `json:"showLogo"`
	LogoPosition *string `json:"logoPosition"`
	LogoSize     *int    `json:"logoSize"`

	ShowCompanyName    *bool `json:"showCompanyName"`
	ShowCompanyAddress *bool `json:"showCompanyAddress"`
	ShowCompanyEmail   *bool `json:"showCompanyEmail"`
	ShowCompanyPhone   *bool `json:"showCompanyPhone"`
	ShowCompanyWebsite *bool `json:"showCompanyWebsite"`
	ShowCompanySIRET   *bool `json:"showCompanySiret"`
	ShowClientAddress  *bool `json:"showClientAddress"`
	ShowProjectInfo    *bool `json:"showProjectInfo"`
	ShowNotes          *bool `json:"showNotes"`
	ShowPaymentTerms   *bool `json:"showPaymentTerms"`
	ShowBankDetails    *bool `json:"showBankDetails"`
	ShowSignatureArea  *bool `json:"showSignatureArea"`

	FontFamily  *string  `json:"fontFamily"`
	FontSize    *int     `json:"fontSize"`
	LineSpacing *float64 `json:"lineSpacing"`

	MarginTop    *int `json:"marginTop"`
	MarginRight  *int `json:"marginRight"`
	MarginBottom *int `json:"marginBottom"`
	MarginLeft   *int `json:"marginLeft"`

	ShowPaymentDetails *bool   `json:"showPaymentDetails"`
	ShowLegalMentions  *bool   `json:"showLegalMentions"`
	LegalMentions      *string `json:"legalMentions"`

	TableHeaderColor    *string `json:"tableHeaderColor"`
	TableAlternateColor *string `json:"tableAlternateColor"`
}

// ApplyTo copies the set fields onto the config.
func (r UpdateAppearanceRequest) ApplyTo(c *appearance.Config) {
	if r.DocumentTemplate != nil {
		c.DocumentTemplate = appearance.Template(*r.DocumentTemplate)
	}
	setString(&c.PrimaryColor, r.PrimaryColor)
	setString(&c.HeaderText, r.HeaderText)
	setString(&c.FooterText, r.FooterText)
	setBool(&c.ShowLogo, r.ShowLogo)
	if r.LogoPosition != nil {
		c.LogoPosition = appearance.LogoPosition(*r.LogoPosition)
	}
	setInt(&c.LogoSize, r.LogoSize)
	setBool(&c.ShowCompanyName, r.ShowCompanyName)
	setBool(&c.ShowCompanyAddress, r.ShowCompanyAddress)
	setBool(&c.ShowCompanyEmail, r.ShowCompanyEmail)
	setBool(&c.ShowCompanyPhone, r.ShowCompanyPhone)
	setBool(&c.ShowCompanyWebsite, r.ShowCompanyWebsite)
	setBool(&c.ShowCompanySIRET, r.ShowCompanySIRET)
	setBool(&c.ShowClientAddress, r.ShowClientAddress)
	setBool(&c.ShowProjectInfo, r.ShowProjectInfo)
	setBool(&c.ShowNotes, r.ShowNotes)
	setBool(&c.ShowPaymentTerms, r.ShowPaymentTerms)
	setBool(&c.ShowBankDetails, r.ShowBankDetails)
	setBool(&c.ShowSignatureArea, r.ShowSignatureArea)
	setString(&c.FontFamily, r.FontFamily)
	setInt(&c.FontSize, r.FontSize)
	if r.LineSpacing != nil {
		c.LineSpacing = *r.LineSpacing
	}
	setInt(&c.MarginTop, r.MarginTop)
	setInt(&c.MarginRight, r.MarginRight)
	setInt(&c.MarginBottom, r.MarginBottom)
	setInt(&c.MarginLeft, r.MarginLeft)
	setBool(&c.ShowPaymentDetails, r.ShowPaymentDetails)
	setBool(&c.ShowLegalMentions, r.ShowLegalMentions)
	setString(&c.LegalMentions, r.LegalMentions)
	setString(&c.TableHeaderColor, r.TableHeaderColor)
	setString(&c.TableAlternateColor, r.TableAlternateColor)
}

// ApplyPresetRequest selects a template preset to apply.
type ApplyPresetRequest struct {
	Template string `json:"template" binding:"required"`
}
