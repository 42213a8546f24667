package invitation

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

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

type memoryStore struct {
	mu          sync.Mutex
	invitations map[id.ID]*Invitation
}

var _ Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{invitations: make(map[id.ID]*Invitation)}
}

func (s *memoryStore) ListByTenant(_ context.Context, tenantID id.ID) ([]*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Invitation
	for _, inv := range s.invitations {
		if inv.TenantID == tenantID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryStore) GetByToken(_ context.Context, token id.ID) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invitations {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invitation", token.String())
}

func (s *memoryStore) Create(_ context.Context, inv *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.invitations[inv.ID] = &cp
	return nil
}

func (s *memoryStore) Update(_ context.Context, inv *Invitation) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[inv.ID]; !ok {
		return nil, apperror.NewNotFound("invitation", inv.ID.String())
	}
	cp := *inv
	s.invitations[inv.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memoryStore) PendingExists(_ context.Context, tenantID id.ID, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invitations {
		if inv.TenantID == tenantID && inv.Email == email && !inv.IsAccepted && !inv.IsExpired {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T, clock time.Time) (*Service, *memoryStore, id.ID) {
	t.Helper()
	tenantID := id.New()
	store := newMemoryStore()
	svc := NewService(store, &stubDirectory{known: map[id.ID]bool{tenantID: true}})
	svc.now = func() time.Time { return clock }
	return svc, store, tenantID
}

func TestService_Invite(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	created, err := svc.Invite(ctx, &Invitation{
		TenantID:  tenantID,
		Email:     "  Marie@Example.com ",
		InvitedBy: id.New(),
	})
	require.NoError(t, err)
	assert.False(t, id.IsNil(created.ID))
	assert.False(t, id.IsNil(created.Token))
	assert.Equal(t, "marie@example.com", created.Email)
	assert.Equal(t, RoleUser, created.Role)
	assert.Equal(t, clock.Add(Validity), created.ExpiresAt)
	assert.True(t, created.IsValid(clock))
}

func TestService_Invite_PendingDuplicate(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()
	invitedBy := id.New()

	_, err := svc.Invite(ctx, &Invitation{TenantID: tenantID, Email: "marie@example.com", InvitedBy: invitedBy})
	require.NoError(t, err)

	_, err = svc.Invite(ctx, &Invitation{TenantID: tenantID, Email: "MARIE@example.com", InvitedBy: invitedBy})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestService_Invite_Invalid(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	tests := []struct {
		name string
		inv  *Invitation
	}{
		{"bad email", &Invitation{TenantID: tenantID, Email: "not-an-email", InvitedBy: id.New()}},
		{"missing inviter", &Invitation{TenantID: tenantID, Email: "marie@example.com"}},
		{"bad role", &Invitation{TenantID: tenantID, Email: "marie@example.com", InvitedBy: id.New(), Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Invite(ctx, tt.inv)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestService_Invite_UnknownTenant(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, clock)

	_, err := svc.Invite(context.Background(), &Invitation{
		TenantID:  id.New(),
		Email:     "marie@example.com",
		InvitedBy: id.New(),
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Accept(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	created, err := svc.Invite(ctx, &Invitation{TenantID: tenantID, Email: "marie@example.com", InvitedBy: id.New()})
	require.NoError(t, err)

	accepted, err := svc.Accept(ctx, created.Token)
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)
	require.NotNil(t, accepted.AcceptedAt)
	assert.Equal(t, clock, *accepted.AcceptedAt)

	// A settled token cannot be used again.
	_, err = svc.Accept(ctx, created.Token)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestService_Accept_Expired(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, store, tenantID := newTestService(t, clock)
	ctx := context.Background()

	created, err := svc.Invite(ctx, &Invitation{TenantID: tenantID, Email: "marie@example.com", InvitedBy: id.New()})
	require.NoError(t, err)

	svc.now = func() time.Time { return clock.Add(Validity + time.Hour) }
	_, err = svc.Accept(ctx, created.Token)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// The late acceptance marks the invitation expired.
	stored, err := store.GetByToken(ctx, created.Token)
	require.NoError(t, err)
	assert.True(t, stored.IsExpired)
}

func TestService_Accept_UnknownToken(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, clock)

	_, err := svc.Accept(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Revoke(t *testing.T) {
	clock := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc, _, tenantID := newTestService(t, clock)
	ctx := context.Background()

	created, err := svc.Invite(ctx, &Invitation{TenantID: tenantID, Email: "marie@example.com", InvitedBy: id.New()})
	require.NoError(t, err)

	revoked, err := svc.Revoke(ctx, tenantID, created.ID)
	require.NoError(t, err)
	assert.True(t, revoked.IsExpired)

	_, err = svc.Accept(ctx, created.Token)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// The email can be invited again after the revocation.
	_, err = svc.Invite(ctx, &Invitation{TenantID: tenantID, Email: "marie@example.com", InvitedBy: id.New()})
	assert.NoError(t, err)
}
