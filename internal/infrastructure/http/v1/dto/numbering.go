package dto

import (
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
)

// NumberingConfigRequest carries one numbering configuration. Used both
// for single upserts and for the bulk replace payload.
type NumberingConfigRequest struct {
	DocumentType string `json:"documentType" binding:"required"`

	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`

	NextNumber int `json:"nextNumber"`
	Padding    int `json:"padding"`

	IncludeYear  bool `json:"includeYear"`
	IncludeMonth bool `json:"includeMonth"`
	IncludeDay   bool `json:"includeDay"`

	DateFormat string `json:"dateFormat"`
	Separator  string `json:"separator"`

	CustomFormat string `json:"customFormat"`

	ResetYearly  bool `json:"resetYearly"`
	ResetMonthly bool `json:"resetMonthly"`
}

// ToConfig builds a config owned by the tenant. Zero values are filled
// by the service's normalization.
func (r NumberingConfigRequest) ToConfig(tenantID id.ID) *numbering.Config {
	return &numbering.Config{
		TenantID:     tenantID,
		DocumentType: numbering.DocumentType(r.DocumentType),
		Prefix:       r.Prefix,
		Suffix:       r.Suffix,
		NextNumber:   r.NextNumber,
		Padding:      r.Padding,
		IncludeYear:  r.IncludeYear,
		IncludeMonth: r.IncludeMonth,
		IncludeDay:   r.IncludeDay,
		DateFormat:   numbering.DateFormat(r.DateFormat),
		Separator:    r.Separator,
		CustomFormat: r.CustomFormat,
		ResetYearly:  r.ResetYearly,
		ResetMonthly: r.ResetMonthly,
	}
}

// ReplaceNumberingRequest is the bulk replace payload.
type ReplaceNumberingRequest struct {
	Configs []NumberingConfigRequest `json:"configs" binding:"required,min=1,dive"`
}

// NumberingDetailResponse pairs a stored config with its non-mutating
// preview so detail screens need a single request.
type NumberingDetailResponse struct {
	Config  *numbering.Config  `json:"config"`
	Preview *numbering.Preview `json:"preview"`
}

// GenerateNumberResponse is the result of consuming a number.
type GenerateNumberResponse struct {
	DocumentType string `json:"documentType"`
	Number       string `json:"number"`
}

// IncrementCounterResponse reports the counter transition.
type IncrementCounterResponse struct {
	OldCounter int `json:"old_counter"`
	NewCounter int `json:"new_counter"`
}

// ResetCounterRequest sets the counter to an explicit value.
type ResetCounterRequest struct {
	Value int `json:"value" binding:"required,min=1"`
}
