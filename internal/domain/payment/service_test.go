package payment

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

type memoryTermStore struct {
	mu    sync.Mutex
	terms map[id.ID]*Term
}

var _ TermStore = (*memoryTermStore)(nil)

func newMemoryTermStore() *memoryTermStore {
	return &memoryTermStore{terms: make(map[id.ID]*Term)}
}

func (s *memoryTermStore) ListByTenant(_ context.Context, tenantID id.ID) ([]*Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Term
	for _, t := range s.terms {
		if t.TenantID == tenantID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out, nil
}

func (s *memoryTermStore) GetByID(_ context.Context, tenantID, termID id.ID) (*Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.terms[termID]
	if !ok || t.TenantID != tenantID {
		return nil, apperror.NewNotFound("payment term", termID)
	}
	cp := *t
	return &cp, nil
}

func (s *memoryTermStore) Create(_ context.Context, t *Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.terms[t.ID] = &cp
	return nil
}

func (s *memoryTermStore) Update(_ context.Context, t *Term) (*Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.terms[t.ID]; !ok {
		return nil, apperror.NewNotFound("payment term", t.ID)
	}
	cp := *t
	s.terms[t.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memoryTermStore) Delete(_ context.Context, tenantID, termID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.terms[termID]
	if !ok || t.TenantID != tenantID {
		return apperror.NewNotFound("payment term", termID)
	}
	delete(s.terms, termID)
	return nil
}

func (s *memoryTermStore) ClearDefault(_ context.Context, tenantID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.terms {
		if t.TenantID == tenantID {
			t.IsDefault = false
		}
	}
	return nil
}

type memoryMethodStore struct {
	mu      sync.Mutex
	methods map[id.ID]*Method
}

var _ MethodStore = (*memoryMethodStore)(nil)

func newMemoryMethodStore() *memoryMethodStore {
	return &memoryMethodStore{methods: make(map[id.ID]*Method)}
}

func (s *memoryMethodStore) ListByTenant(_ context.Context, tenantID id.ID, activeOnly bool) ([]*Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Method
	for _, m := range s.methods {
		if m.TenantID != tenantID {
			continue
		}
		if activeOnly && !m.IsActive {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (s *memoryMethodStore) GetByID(_ context.Context, tenantID, methodID id.ID) (*Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[methodID]
	if !ok || m.TenantID != tenantID {
		return nil, apperror.NewNotFound("payment method", methodID)
	}
	cp := *m
	return &cp, nil
}

func (s *memoryMethodStore) Create(_ context.Context, m *Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.methods[m.ID] = &cp
	return nil
}

func (s *memoryMethodStore) Update(_ context.Context, m *Method) (*Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.methods[m.ID]; !ok {
		return nil, apperror.NewNotFound("payment method", m.ID)
	}
	cp := *m
	s.methods[m.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memoryMethodStore) Delete(_ context.Context, tenantID, methodID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[methodID]
	if !ok || m.TenantID != tenantID {
		return apperror.NewNotFound("payment method", methodID)
	}
	delete(s.methods, methodID)
	return nil
}

func (s *memoryMethodStore) CountByTenant(_ context.Context, tenantID id.ID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.methods {
		if m.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func newTestService() (*Service, *memoryTermStore, *memoryMethodStore) {
	terms := newMemoryTermStore()
	methods := newMemoryMethodStore()
	return NewService(terms, methods), terms, methods
}

func TestService_CreateTerm_SingleDefault(t *testing.T) {
	svc, terms, _ := newTestService()
	ctx := context.Background()
	tenantID := id.New()

	first, err := svc.CreateTerm(ctx, &Term{TenantID: tenantID, Label: "Comptant", Days: 0, IsDefault: true, IsActive: true})
	require.NoError(t, err)
	require.False(t, id.IsNil(first.ID))

	second, err := svc.CreateTerm(ctx, &Term{TenantID: tenantID, Label: "30 jours", Days: 30, IsDefault: true, IsActive: true})
	require.NoError(t, err)

	stored, err := terms.GetByID(ctx, tenantID, first.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsDefault)

	stored, err = terms.GetByID(ctx, tenantID, second.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDefault)
}

func TestService_CreateTerm_Invalid(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateTerm(ctx, &Term{TenantID: id.New(), Label: "  "})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.CreateTerm(ctx, &Term{TenantID: id.New(), Label: "Négatif", Days: -1})
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_UpdateTerm_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateTerm(context.Background(), &Term{ID: id.New(), TenantID: id.New(), Label: "45 jours", Days: 45})
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_ListMethods_ActiveOnly(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	tenantID := id.New()

	_, err := svc.CreateMethod(ctx, &Method{
		TenantID:   tenantID,
		MethodType: MethodCash,
		Label:      "Espèces",
		IsActive:   true,
	})
	require.NoError(t, err)
	_, err = svc.CreateMethod(ctx, &Method{
		TenantID:     tenantID,
		MethodType:   MethodCard,
		Label:        "Carte bancaire",
		DisplayOrder: 1,
		IsActive:     false,
	})
	require.NoError(t, err)

	all, err := svc.ListMethods(ctx, tenantID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListMethods(ctx, tenantID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Espèces", active[0].Label)
}

func TestService_CreateDefaultMethods(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	tenantID := id.New()

	created, err := svc.CreateDefaultMethods(ctx, tenantID, "Benaya BTP", "12 rue de la Paix, 75002 Paris, France")
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, MethodBankTransfer, created[0].MethodType)
	assert.Equal(t, "Benaya BTP", created[0].Details["account_holder"])
	assert.Equal(t, MethodCheck, created[1].MethodType)
	assert.Equal(t, "Benaya BTP", created[1].Details["payable_to"])
	assert.Equal(t, "12 rue de la Paix, 75002 Paris, France", created[1].Details["address"])

	methods, err := svc.ListMethods(ctx, tenantID, true)
	require.NoError(t, err)
	assert.Len(t, methods, 2)
}

func TestService_CreateDefaultMethods_AlreadySeeded(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	tenantID := id.New()

	_, err := svc.CreateDefaultMethods(ctx, tenantID, "Benaya BTP", "")
	require.NoError(t, err)

	_, err = svc.CreateDefaultMethods(ctx, tenantID, "Benaya BTP", "")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}
