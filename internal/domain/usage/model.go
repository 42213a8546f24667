// Package usage tracks per-tenant resource consumption, one record per
// tenant and day.
package usage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

// Record holds the usage metrics of one tenant for one day.
type Record struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	// Date is the day the metrics cover, truncated to midnight UTC.
	Date time.Time `db:"date" json:"date"`

	ActiveUsersCount int             `db:"active_users_count" json:"activeUsersCount"`
	StorageUsedGB    decimal.Decimal `db:"storage_used_gb" json:"storageUsedGb"`
	APICallsCount    int             `db:"api_calls_count" json:"apiCallsCount"`

	LoginsCount      int `db:"logins_count" json:"loginsCount"`
	DocumentsCreated int `db:"documents_created" json:"documentsCreated"`
	DocumentsUpdated int `db:"documents_updated" json:"documentsUpdated"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks that no metric is negative.
func (r *Record) Validate() error {
	for field, value := range map[string]int{
		"activeUsersCount": r.ActiveUsersCount,
		"apiCallsCount":    r.APICallsCount,
		"loginsCount":      r.LoginsCount,
		"documentsCreated": r.DocumentsCreated,
		"documentsUpdated": r.DocumentsUpdated,
	} {
		if value < 0 {
			return apperror.NewValidation("usage metric cannot be negative").
				WithDetail("field", field).
				WithDetail("value", value)
		}
	}
	if r.StorageUsedGB.IsNegative() {
		return apperror.NewValidation("usage metric cannot be negative").
			WithDetail("field", "storageUsedGb").
			WithDetail("value", r.StorageUsedGB.String())
	}
	return nil
}

// Day normalizes a timestamp to the record key.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
