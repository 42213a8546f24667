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
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
)

const (
	tenantTable   = "tenants"
	settingsTable = "tenant_settings"
	bankInfoTable = "tenant_bank_info"
)

var (
	tenantColumns   = ExtractDBColumns[tenant.Tenant]()
	settingsColumns = ExtractDBColumns[tenant.Settings]()
	bankInfoColumns = ExtractDBColumns[tenant.BankInfo]()
)

// TenantRepo implements tenant.Store.
type TenantRepo struct {
	tx *TxManager
}

var _ tenant.Store = (*TenantRepo)(nil)

// NewTenantRepo creates a tenant repository.
func NewTenantRepo(tx *TxManager) *TenantRepo {
	return &TenantRepo{tx: tx}
}

// Create implements tenant.Store.
func (r *TenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	q := psql.Insert(tenantTable).SetMap(StructToMap(t))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("tenant", "name", t.Name)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID implements tenant.Store.
func (r *TenantRepo) GetByID(ctx context.Context, tenantID id.ID) (*tenant.Tenant, error) {
	return r.getBy(ctx, squirrel.Eq{"id": tenantID}, tenantID.String())
}

// GetBySlug implements tenant.Store.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return r.getBy(ctx, squirrel.Eq{"slug": slug}, slug)
}

func (r *TenantRepo) getBy(ctx context.Context, where squirrel.Eq, key string) (*tenant.Tenant, error) {
	q := psql.Select(tenantColumns...).From(tenantTable).Where(where)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t tenant.Tenant
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("tenant", key)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// List implements tenant.Store, newest first.
func (r *TenantRepo) List(ctx context.Context, f tenant.ListFilter) ([]*tenant.Tenant, error) {
	q := psql.Select(tenantColumns...).
		From(tenantTable).
		OrderBy("created_at DESC")

	if f.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *f.IsActive})
	}
	if f.Plan != nil {
		q = q.Where(squirrel.Eq{"subscription_plan": *f.Plan})
	}
	if f.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + f.Search + "%"})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var tenants []*tenant.Tenant
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &tenants, sql, args...); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// Update implements tenant.Store. Identity and creation metadata never
// change.
func (r *TenantRepo) Update(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	t.UpdatedAt = time.Now()

	values := StructToMap(t)
	delete(values, "id")
	delete(values, "slug")
	delete(values, "created_at")
	delete(values, "created_by")

	q := psql.Update(tenantTable).
		SetMap(values).
		Where(squirrel.Eq{"id": t.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.NewDuplicate("tenant", "name", t.Name)
		}
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFound("tenant", t.ID.String())
	}

	return r.GetByID(ctx, t.ID)
}

// SlugExists implements tenant.Store.
func (r *TenantRepo) SlugExists(ctx context.Context, slug string, excludeID id.ID) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"slug": slug}, excludeID)
}

// NameExists implements tenant.Store.
func (r *TenantRepo) NameExists(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"name": name}, excludeID)
}

func (r *TenantRepo) exists(ctx context.Context, where squirrel.Eq, excludeID id.ID) (bool, error) {
	q := psql.Select("1").From(tenantTable).Where(where).Limit(1)
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
		return false, fmt.Errorf("check existence: %w", err)
	}
	return true, nil
}

// UpdateSchemaState implements tenant.Store.
func (r *TenantRepo) UpdateSchemaState(ctx context.Context, tenantID id.ID, status tenant.SchemaStatus, progress *tenant.SchemaProgress, schemaErr string, readyAt *time.Time) error {
	q := psql.Update(tenantTable).
		Set("schema_status", status).
		Set("schema_progress", progress).
		Set("schema_error", schemaErr).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": tenantID})
	if readyAt != nil {
		q = q.Set("schema_created_at", readyAt)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update schema state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("tenant", tenantID.String())
	}
	return nil
}

// GetSettings implements tenant.Store.
func (r *TenantRepo) GetSettings(ctx context.Context, tenantID id.ID) (*tenant.Settings, error) {
	q := psql.Select(settingsColumns...).
		From(settingsTable).
		Where(squirrel.Eq{"tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s tenant.Settings
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("tenant settings", tenantID.String())
		}
		return nil, fmt.Errorf("get tenant settings: %w", err)
	}
	return &s, nil
}

// UpsertSettings implements tenant.Store, one row per tenant.
func (r *TenantRepo) UpsertSettings(ctx context.Context, s *tenant.Settings) (*tenant.Settings, error) {
	if id.IsNil(s.ID) {
		s.ID = id.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	q := psql.Insert(settingsTable).
		SetMap(StructToMap(s)).
		Suffix(upsertAllExcept(settingsColumns, "id", "tenant_id", "created_at"))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert tenant settings: %w", err)
	}
	return r.GetSettings(ctx, s.TenantID)
}

// GetBankInfo implements tenant.Store.
func (r *TenantRepo) GetBankInfo(ctx context.Context, tenantID id.ID) (*tenant.BankInfo, error) {
	q := psql.Select(bankInfoColumns...).
		From(bankInfoTable).
		Where(squirrel.Eq{"tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b tenant.BankInfo
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("tenant bank info", tenantID.String())
		}
		return nil, fmt.Errorf("get tenant bank info: %w", err)
	}
	return &b, nil
}

// UpsertBankInfo implements tenant.Store, one row per tenant.
func (r *TenantRepo) UpsertBankInfo(ctx context.Context, b *tenant.BankInfo) (*tenant.BankInfo, error) {
	if id.IsNil(b.ID) {
		b.ID = id.New()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	q := psql.Insert(bankInfoTable).
		SetMap(StructToMap(b)).
		Suffix(upsertAllExcept(bankInfoColumns, "id", "tenant_id", "created_at"))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert tenant bank info: %w", err)
	}
	return r.GetBankInfo(ctx, b.TenantID)
}
