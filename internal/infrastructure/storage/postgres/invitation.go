package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/invitation"
)

const invitationTable = "tenant_invitations"

var invitationColumns = ExtractDBColumns[invitation.Invitation]()

// InvitationRepo implements invitation.Store.
type InvitationRepo struct {
	tx *TxManager
}

var _ invitation.Store = (*InvitationRepo)(nil)

// NewInvitationRepo creates an invitation repository.
func NewInvitationRepo(tx *TxManager) *InvitationRepo {
	return &InvitationRepo{tx: tx}
}

// ListByTenant implements invitation.Store.
func (r *InvitationRepo) ListByTenant(ctx context.Context, tenantID id.ID) ([]*invitation.Invitation, error) {
	q := psql.Select(invitationColumns...).
		From(invitationTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var invitations []*invitation.Invitation
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &invitations, sql, args...); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

// GetByToken implements invitation.Store.
func (r *InvitationRepo) GetByToken(ctx context.Context, token id.ID) (*invitation.Invitation, error) {
	q := psql.Select(invitationColumns...).
		From(invitationTable).
		Where(squirrel.Eq{"token": token})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invitation.Invitation
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invitation", token.String())
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

// Create implements invitation.Store.
func (r *InvitationRepo) Create(ctx context.Context, inv *invitation.Invitation) error {
	q := psql.Insert(invitationTable).SetMap(StructToMap(inv))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("invitation", "email", inv.Email)
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// Update implements invitation.Store.
func (r *InvitationRepo) Update(ctx context.Context, inv *invitation.Invitation) (*invitation.Invitation, error) {
	inv.UpdatedAt = time.Now()

	values := StructToMap(inv)
	delete(values, "id")
	delete(values, "tenant_id")
	delete(values, "created_at")

	q := psql.Update(invitationTable).
		SetMap(values).
		Where(squirrel.Eq{"id": inv.ID, "tenant_id": inv.TenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFound("invitation", inv.ID.String())
	}
	return r.GetByToken(ctx, inv.Token)
}

// PendingExists implements invitation.Store.
func (r *InvitationRepo) PendingExists(ctx context.Context, tenantID id.ID, email string) (bool, error) {
	q := psql.Select("1").
		From(invitationTable).
		Where(squirrel.Eq{
			"tenant_id":   tenantID,
			"email":       email,
			"is_accepted": false,
			"is_expired":  false,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.tx.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check pending invitation: %w", err)
	}
	return true, nil
}
