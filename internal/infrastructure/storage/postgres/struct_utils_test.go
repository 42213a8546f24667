package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
)

type mockBase struct {
	ID        id.ID     `db:"id"`
	TenantID  id.ID     `db:"tenant_id"`
	CreatedAt time.Time `db:"created_at"`
}

type mockEntity struct {
	mockBase
	Code   string `db:"code"`
	Label  string `db:"label"`
	hidden string
	Skip   string `db:"-"`
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	assert.Equal(t, []string{"id", "tenant_id", "created_at", "code", "label"}, cols)
}

func TestExtractDBColumns_NumberingConfig(t *testing.T) {
	cols := ExtractDBColumns[numbering.Config]()

	for _, expected := range []string{
		"id", "tenant_id", "document_type", "prefix", "next_number",
		"padding", "include_year", "reset_yearly", "reset_monthly",
		"separator", "custom_format", "created_at", "updated_at",
	} {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	e := mockEntity{
		mockBase: mockBase{
			ID:        id.New(),
			TenantID:  id.New(),
			CreatedAt: now,
		},
		Code:   "NET30",
		Label:  "30 jours",
		hidden: "not exported",
		Skip:   "not mapped",
	}

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, e.TenantID, m["tenant_id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "NET30", m["code"])
	assert.Equal(t, "30 jours", m["label"])
	assert.NotContains(t, m, "hidden")
	assert.NotContains(t, m, "-")
}

func TestStructToMap_Pointer(t *testing.T) {
	rate := &vat.Rate{
		ID:       id.New(),
		TenantID: id.New(),
		Code:     "TVA20",
		Name:     "TVA 20%",
	}

	m := StructToMap(rate)

	assert.Equal(t, rate.ID, m["id"])
	assert.Equal(t, "TVA20", m["code"])
	assert.Equal(t, "TVA 20%", m["name"])
}
