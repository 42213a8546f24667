package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/usage"
)

// RecordUsageRequest reports the metrics of one day. An absent date means
// today.
type RecordUsageRequest struct {
	Date             *time.Time      `json:"date"`
	ActiveUsersCount int             `json:"activeUsersCount"`
	StorageUsedGB    decimal.Decimal `json:"storageUsedGb"`
	APICallsCount    int             `json:"apiCallsCount"`
	LoginsCount      int             `json:"loginsCount"`
	DocumentsCreated int             `json:"documentsCreated"`
	DocumentsUpdated int             `json:"documentsUpdated"`
}

// ToRecord maps the request onto the domain model.
func (r *RecordUsageRequest) ToRecord(tenantID id.ID) *usage.Record {
	rec := &usage.Record{
		TenantID:         tenantID,
		ActiveUsersCount: r.ActiveUsersCount,
		StorageUsedGB:    r.StorageUsedGB,
		APICallsCount:    r.APICallsCount,
		LoginsCount:      r.LoginsCount,
		DocumentsCreated: r.DocumentsCreated,
		DocumentsUpdated: r.DocumentsUpdated,
	}
	if r.Date != nil {
		rec.Date = *r.Date
	}
	return rec
}
