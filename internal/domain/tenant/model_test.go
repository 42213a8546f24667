package tenant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenayasoft/tenant-service/internal/core/id"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Benaya", "benaya"},
		{"spaces", "Ma Petite Entreprise", "ma-petite-entreprise"},
		{"punctuation", "A&B Construction, SARL", "a-b-construction-sarl"},
		{"leading trailing", "  --Demo Co--  ", "demo-co"},
		{"digits", "Agence 42", "agence-42"},
		{"collapses runs", "a   !!  b", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewTenant_Defaults(t *testing.T) {
	created := NewTenant("Benaya BTP")

	assert.False(t, id.IsNil(created.ID))
	assert.Equal(t, "Benaya BTP", created.Name)
	assert.Equal(t, "France", created.Country)
	assert.True(t, created.IsActive)
	assert.True(t, created.IsTrial)
	assert.Equal(t, PlanTrial, created.SubscriptionPlan)
	assert.Equal(t, 5, created.MaxUsers)
	assert.Equal(t, 1, created.MaxStorageGB)
	assert.Equal(t, SchemaPending, created.SchemaStatus)

	require.NotNil(t, created.TrialEndDate)
	assert.WithinDuration(t, time.Now().Add(TrialDuration), *created.TrialEndDate, time.Minute)
}

func TestTenant_Validate(t *testing.T) {
	valid := NewTenant("Valide")
	assert.NoError(t, valid.Validate())

	noName := NewTenant("   ")
	assert.Error(t, noName.Validate())

	badPlan := NewTenant("Plan")
	badPlan.SubscriptionPlan = SubscriptionPlan("platinum")
	assert.Error(t, badPlan.Validate())
}

func TestTenant_Trial(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	end := now.Add(10 * 24 * time.Hour)
	tr := &Tenant{IsTrial: true, TrialEndDate: &end}
	assert.False(t, tr.TrialExpired(now))
	assert.Equal(t, 10, tr.TrialDaysLeft(now))

	past := now.Add(-24 * time.Hour)
	expired := &Tenant{IsTrial: true, TrialEndDate: &past}
	assert.True(t, expired.TrialExpired(now))
	assert.Equal(t, 0, expired.TrialDaysLeft(now))

	paying := &Tenant{IsTrial: false}
	assert.False(t, paying.TrialExpired(now))
	assert.Equal(t, 0, paying.TrialDaysLeft(now))
}

func TestTenant_FullAddress(t *testing.T) {
	full := &Tenant{
		AddressLine1: "12 rue de la Paix",
		PostalCode:   "75002",
		City:         "Paris",
		Country:      "France",
	}
	assert.Equal(t, "12 rue de la Paix, 75002 Paris, France", full.FullAddress())

	sparse := &Tenant{City: "Casablanca", Country: "Maroc"}
	assert.Equal(t, "Casablanca, Maroc", sparse.FullAddress())
}

func TestDefaultSettings(t *testing.T) {
	tenantID := id.New()
	s := DefaultSettings(tenantID)

	assert.Equal(t, tenantID, s.TenantID)
	assert.Equal(t, "Europe/Paris", s.Timezone)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, "EUR", s.Currency)
	assert.Equal(t, "DD/MM/YYYY", s.DateFormat)
	assert.True(t, s.EmailNotifications)
	assert.False(t, s.SMSNotifications)
	assert.Equal(t, 90, s.PasswordExpiryDays)
	assert.Equal(t, 480, s.SessionTimeoutMinutes)
}
