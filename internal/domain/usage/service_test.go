package usage

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

type stubDirectory struct {
	known map[id.ID]bool
}

func (d *stubDirectory) Exists(_ context.Context, tenantID id.ID) error {
	if !d.known[tenantID] {
		return apperror.NewNotFound("tenant", tenantID.String())
	}
	return nil
}

type dayKey struct {
	tenantID id.ID
	date     time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	records map[dayKey]*Record
}

var _ Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[dayKey]*Record)}
}

func (s *memoryStore) ListByTenant(_ context.Context, tenantID id.ID, limit int) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Record
	for key, rec := range s.records {
		if key.tenantID == tenantID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) Upsert(_ context.Context, rec *Record) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[dayKey{tenantID: rec.TenantID, date: rec.Date}] = &cp
	out := cp
	return &out, nil
}

func newTestService(t *testing.T, clock time.Time) (*Service, *memoryStore, id.ID) {
	t.Helper()
	tenantID := id.New()
	store := newMemoryStore()
	svc := NewService(store, &stubDirectory{known: map[id.ID]bool{tenantID: true}})
	svc.now = func() time.Time { return clock }
	return svc, store, tenantID
}

func TestService_Record(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	stored, err := svc.Record(ctx, &Record{
		TenantID:         tenantID,
		ActiveUsersCount: 4,
		StorageUsedGB:    decimal.RequireFromString("0.75"),
		APICallsCount:    120,
	})
	require.NoError(t, err)
	assert.False(t, id.IsNil(stored.ID))
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), stored.Date)
	assert.Equal(t, 4, stored.ActiveUsersCount)
}

func TestService_Record_ReplacesSameDay(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	_, err := svc.Record(ctx, &Record{TenantID: tenantID, APICallsCount: 10})
	require.NoError(t, err)

	svc.now = func() time.Time { return clock.Add(8 * time.Hour) }
	_, err = svc.Record(ctx, &Record{TenantID: tenantID, APICallsCount: 250})
	require.NoError(t, err)

	records, err := svc.List(ctx, tenantID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 250, records[0].APICallsCount)
}

func TestService_Record_RejectsNegativeMetric(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)

	_, err := svc.Record(context.Background(), &Record{TenantID: tenantID, LoginsCount: -1})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.Record(context.Background(), &Record{
		TenantID:      tenantID,
		StorageUsedGB: decimal.RequireFromString("-1"),
	})
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_List_MostRecentFirst(t *testing.T) {
	clock := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		date := time.Date(2024, time.June, day, 12, 0, 0, 0, time.UTC)
		_, err := svc.Record(ctx, &Record{TenantID: tenantID, Date: date, LoginsCount: day})
		require.NoError(t, err)
	}

	records, err := svc.List(ctx, tenantID, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].LoginsCount)
	assert.Equal(t, 2, records[1].LoginsCount)
}

func TestService_List_UnknownTenant(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, clock)

	_, err := svc.List(context.Background(), id.New(), 0)
	assert.True(t, apperror.IsNotFound(err))
}
