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
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
)

const vatTable = "tenant_vat_rates"

var vatColumns = ExtractDBColumns[vat.Rate]()

// VatRepo implements vat.Store.
type VatRepo struct {
	tx *TxManager
}

var _ vat.Store = (*VatRepo)(nil)

// NewVatRepo creates a VAT rate repository.
func NewVatRepo(tx *TxManager) *VatRepo {
	return &VatRepo{tx: tx}
}

// ListByTenant implements vat.Store.
func (r *VatRepo) ListByTenant(ctx context.Context, tenantID id.ID) ([]*vat.Rate, error) {
	q := psql.Select(vatColumns...).
		From(vatTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("rate DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rates []*vat.Rate
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rates, sql, args...); err != nil {
		return nil, fmt.Errorf("list vat rates: %w", err)
	}
	return rates, nil
}

// GetByID implements vat.Store.
func (r *VatRepo) GetByID(ctx context.Context, tenantID, rateID id.ID) (*vat.Rate, error) {
	q := psql.Select(vatColumns...).
		From(vatTable).
		Where(squirrel.Eq{"id": rateID, "tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rate vat.Rate
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &rate, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("vat rate", rateID.String())
		}
		return nil, fmt.Errorf("get vat rate: %w", err)
	}
	return &rate, nil
}

// Create implements vat.Store.
func (r *VatRepo) Create(ctx context.Context, rate *vat.Rate) error {
	q := psql.Insert(vatTable).SetMap(StructToMap(rate))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("vat rate", "code", rate.Code)
		}
		return fmt.Errorf("insert vat rate: %w", err)
	}
	return nil
}

// Update implements vat.Store.
func (r *VatRepo) Update(ctx context.Context, rate *vat.Rate) (*vat.Rate, error) {
	rate.UpdatedAt = time.Now()

	values := StructToMap(rate)
	delete(values, "id")
	delete(values, "tenant_id")
	delete(values, "created_at")

	q := psql.Update(vatTable).
		SetMap(values).
		Where(squirrel.Eq{"id": rate.ID, "tenant_id": rate.TenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.NewDuplicate("vat rate", "code", rate.Code)
		}
		return nil, fmt.Errorf("update vat rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFound("vat rate", rate.ID.String())
	}
	return r.GetByID(ctx, rate.TenantID, rate.ID)
}

// Delete implements vat.Store.
func (r *VatRepo) Delete(ctx context.Context, tenantID, rateID id.ID) error {
	q := psql.Delete(vatTable).
		Where(squirrel.Eq{"id": rateID, "tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete vat rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("vat rate", rateID.String())
	}
	return nil
}

// CodeExists implements vat.Store.
func (r *VatRepo) CodeExists(ctx context.Context, tenantID id.ID, code string, excludeID id.ID) (bool, error) {
	q := psql.Select("1").
		From(vatTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "code": code}).
		Limit(1)
	if !id.IsNil(excludeID) {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

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
		return false, fmt.Errorf("check vat code: %w", err)
	}
	return true, nil
}

// ClearDefault implements vat.Store.
func (r *VatRepo) ClearDefault(ctx context.Context, tenantID id.ID) error {
	q := psql.Update(vatTable).
		Set("is_default", false).
		Where(squirrel.Eq{"tenant_id": tenantID, "is_default": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear default vat rate: %w", err)
	}
	return nil
}
