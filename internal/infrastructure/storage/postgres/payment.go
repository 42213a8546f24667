package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
)

const (
	paymentTermTable   = "tenant_payment_terms"
	paymentMethodTable = "tenant_payment_methods"
)

var (
	paymentTermColumns   = ExtractDBColumns[payment.Term]()
	paymentMethodColumns = ExtractDBColumns[payment.Method]()
)

// TermRepo implements payment.TermStore.
type TermRepo struct {
	tx *TxManager
}

var _ payment.TermStore = (*TermRepo)(nil)

// NewTermRepo creates a payment term repository.
func NewTermRepo(tx *TxManager) *TermRepo {
	return &TermRepo{tx: tx}
}

// ListByTenant implements payment.TermStore.
func (r *TermRepo) ListByTenant(ctx context.Context, tenantID id.ID) ([]*payment.Term, error) {
	q := psql.Select(paymentTermColumns...).
		From(paymentTermTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("days ASC", "created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var terms []*payment.Term
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &terms, sql, args...); err != nil {
		return nil, fmt.Errorf("list payment terms: %w", err)
	}
	return terms, nil
}

// GetByID implements payment.TermStore.
func (r *TermRepo) GetByID(ctx context.Context, tenantID, termID id.ID) (*payment.Term, error) {
	q := psql.Select(paymentTermColumns...).
		From(paymentTermTable).
		Where(squirrel.Eq{"id": termID, "tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var term payment.Term
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &term, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment term", termID.String())
		}
		return nil, fmt.Errorf("get payment term: %w", err)
	}
	return &term, nil
}

// Create implements payment.TermStore.
func (r *TermRepo) Create(ctx context.Context, term *payment.Term) error {
	q := psql.Insert(paymentTermTable).SetMap(StructToMap(term))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("payment term", "label", term.Label)
		}
		return fmt.Errorf("insert payment term: %w", err)
	}
	return nil
}

// Update implements payment.TermStore.
func (r *TermRepo) Update(ctx context.Context, term *payment.Term) (*payment.Term, error) {
	term.UpdatedAt = time.Now()

	values := StructToMap(term)
	delete(values, "id")
	delete(values, "tenant_id")
	delete(values, "created_at")

	q := psql.Update(paymentTermTable).
		SetMap(values).
		Where(squirrel.Eq{"id": term.ID, "tenant_id": term.TenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update payment term: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFound("payment term", term.ID.String())
	}
	return r.GetByID(ctx, term.TenantID, term.ID)
}

// Delete implements payment.TermStore.
func (r *TermRepo) Delete(ctx context.Context, tenantID, termID id.ID) error {
	q := psql.Delete(paymentTermTable).
		Where(squirrel.Eq{"id": termID, "tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete payment term: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("payment term", termID.String())
	}
	return nil
}

// ClearDefault implements payment.TermStore.
func (r *TermRepo) ClearDefault(ctx context.Context, tenantID id.ID) error {
	q := psql.Update(paymentTermTable).
		Set("is_default", false).
		Where(squirrel.Eq{"tenant_id": tenantID, "is_default": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear default payment term: %w", err)
	}
	return nil
}

// MethodRepo implements payment.MethodStore. The details column is jsonb
// and round-trips through the pgx JSON codec.
type MethodRepo struct {
	tx *TxManager
}

var _ payment.MethodStore = (*MethodRepo)(nil)

// NewMethodRepo creates a payment method repository.
func NewMethodRepo(tx *TxManager) *MethodRepo {
	return &MethodRepo{tx: tx}
}

// ListByTenant implements payment.MethodStore.
func (r *MethodRepo) ListByTenant(ctx context.Context, tenantID id.ID, activeOnly bool) ([]*payment.Method, error) {
	q := psql.Select(paymentMethodColumns...).
		From(paymentMethodTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("display_order ASC", "created_at ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var methods []*payment.Method
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &methods, sql, args...); err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

// GetByID implements payment.MethodStore.
func (r *MethodRepo) GetByID(ctx context.Context, tenantID, methodID id.ID) (*payment.Method, error) {
	q := psql.Select(paymentMethodColumns...).
		From(paymentMethodTable).
		Where(squirrel.Eq{"id": methodID, "tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var method payment.Method
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &method, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment method", methodID.String())
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &method, nil
}

// Create implements payment.MethodStore.
func (r *MethodRepo) Create(ctx context.Context, method *payment.Method) error {
	q := psql.Insert(paymentMethodTable).SetMap(StructToMap(method))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// Update implements payment.MethodStore.
func (r *MethodRepo) Update(ctx context.Context, method *payment.Method) (*payment.Method, error) {
	method.UpdatedAt = time.Now()

	values := StructToMap(method)
	delete(values, "id")
	delete(values, "tenant_id")
	delete(values, "created_at")

	q := psql.Update(paymentMethodTable).
		SetMap(values).
		Where(squirrel.Eq{"id": method.ID, "tenant_id": method.TenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFound("payment method", method.ID.String())
	}
	return r.GetByID(ctx, method.TenantID, method.ID)
}

// Delete implements payment.MethodStore.
func (r *MethodRepo) Delete(ctx context.Context, tenantID, methodID id.ID) error {
	q := psql.Delete(paymentMethodTable).
		Where(squirrel.Eq{"id": methodID, "tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("payment method", methodID.String())
	}
	return nil
}

// CountByTenant implements payment.MethodStore.
func (r *MethodRepo) CountByTenant(ctx context.Context, tenantID id.ID) (int, error) {
	q := psql.Select("COUNT(*)").
		From(paymentMethodTable).
		Where(squirrel.Eq{"tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.tx.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count payment methods: %w", err)
	}
	return count, nil
}
