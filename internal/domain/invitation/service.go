package invitation

import (
	"context"
	"strings"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// TenantDirectory validates tenant existence before invitations are sent.
// Implemented by the tenant domain service.
type TenantDirectory interface {
	// Exists returns a NOT_FOUND error when the tenant is unknown.
	Exists(ctx context.Context, tenantID id.ID) error
}

// Service implements the invitation lifecycle.
type Service struct {
	store   Store
	tenants TenantDirectory
	now     func() time.Time
}

// NewService creates an invitation service.
func NewService(store Store, tenants TenantDirectory) *Service {
	return &Service{
		store:   store,
		tenants: tenants,
		now:     time.Now,
	}
}

// List returns all invitations of the tenant, settled ones included.
func (s *Service) List(ctx context.Context, tenantID id.ID) ([]*Invitation, error) {
	if err := s.tenants.Exists(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.ListByTenant(ctx, tenantID)
}

// Invite creates an invitation with a fresh token expiring after the
// validity window. An email with a pending invitation cannot be invited
// again.
func (s *Service) Invite(ctx context.Context, inv *Invitation) (*Invitation, error) {
	if err := s.tenants.Exists(ctx, inv.TenantID); err != nil {
		return nil, err
	}
	inv.Email = strings.ToLower(strings.TrimSpace(inv.Email))
	if inv.Role == "" {
		inv.Role = RoleUser
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	pending, err := s.store.PendingExists(ctx, inv.TenantID, inv.Email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.NewDuplicate("invitation", "email", inv.Email)
	}

	now := s.now()
	inv.ID = id.New()
	inv.Token = id.New()
	inv.IsAccepted = false
	inv.IsExpired = false
	inv.AcceptedAt = nil
	inv.ExpiresAt = now.Add(Validity)
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if err := s.store.Create(ctx, inv); err != nil {
		return nil, err
	}
	logger.Info(ctx, "invitation created",
		"tenant_id", inv.TenantID, "email", inv.Email, "role", inv.Role)
	return inv, nil
}

// Accept settles the invitation identified by token. An invitation past
// its window is marked expired and the acceptance is rejected.
func (s *Service) Accept(ctx context.Context, token id.ID) (*Invitation, error) {
	inv, err := s.store.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if inv.IsAccepted {
		return nil, apperror.NewConflict("invitation already accepted").
			WithDetail("email", inv.Email)
	}
	if inv.IsExpired || !now.Before(inv.ExpiresAt) {
		if !inv.IsExpired {
			inv.IsExpired = true
			inv.UpdatedAt = now
			if _, err := s.store.Update(ctx, inv); err != nil {
				return nil, err
			}
		}
		return nil, apperror.NewConflict("invitation has expired").
			WithDetail("email", inv.Email)
	}

	inv.IsAccepted = true
	acceptedAt := now
	inv.AcceptedAt = &acceptedAt
	inv.UpdatedAt = now
	updated, err := s.store.Update(ctx, inv)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "invitation accepted",
		"tenant_id", updated.TenantID, "email", updated.Email)
	return updated, nil
}

// Revoke marks a pending invitation expired so its token can no longer
// be used.
func (s *Service) Revoke(ctx context.Context, tenantID, invitationID id.ID) (*Invitation, error) {
	invitations, err := s.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, inv := range invitations {
		if inv.ID != invitationID {
			continue
		}
		if inv.IsAccepted {
			return nil, apperror.NewConflict("invitation already accepted").
				WithDetail("email", inv.Email)
		}
		inv.IsExpired = true
		inv.UpdatedAt = s.now()
		return s.store.Update(ctx, inv)
	}
	return nil, apperror.NewNotFound("invitation", invitationID)
}
