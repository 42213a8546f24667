package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
)

const numberingTable = "tenant_document_numbering"

var numberingColumns = ExtractDBColumns[numbering.Config]()

// NumberingRepo implements numbering.Store. Counter mutations run in
// row-locked transactions so concurrent consumers of the same
// (tenant, document type) pair serialize while different pairs proceed
// in parallel.
type NumberingRepo struct {
	tx *TxManager
}

var _ numbering.Store = (*NumberingRepo)(nil)

// NewNumberingRepo creates a numbering repository.
func NewNumberingRepo(tx *TxManager) *NumberingRepo {
	return &NumberingRepo{tx: tx}
}

// GetOrCreate implements numbering.Store. The insert-on-conflict-do-
// nothing followed by a select guarantees at most one row per pair under
// concurrent first access.
func (r *NumberingRepo) GetOrCreate(ctx context.Context, tenantID id.ID, docType numbering.DocumentType) (*numbering.Config, error) {
	defaults := numbering.DefaultConfig(tenantID, docType)

	q := psql.Insert(numberingTable).
		SetMap(StructToMap(defaults)).
		Suffix("ON CONFLICT (tenant_id, document_type) DO NOTHING")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert default numbering config: %w", err)
	}

	return r.Get(ctx, tenantID, docType)
}

// Get implements numbering.Store.
func (r *NumberingRepo) Get(ctx context.Context, tenantID id.ID, docType numbering.DocumentType) (*numbering.Config, error) {
	q := psql.Select(numberingColumns...).
		From(numberingTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "document_type": docType})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var cfg numbering.Config
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &cfg, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("numbering config", string(docType))
		}
		return nil, fmt.Errorf("get numbering config: %w", err)
	}
	return &cfg, nil
}

// ListByTenant implements numbering.Store.
func (r *NumberingRepo) ListByTenant(ctx context.Context, tenantID id.ID) ([]*numbering.Config, error) {
	q := psql.Select(numberingColumns...).
		From(numberingTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("document_type")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var cfgs []*numbering.Config
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &cfgs, sql, args...); err != nil {
		return nil, fmt.Errorf("list numbering configs: %w", err)
	}
	return cfgs, nil
}

// Upsert implements numbering.Store. Creates or replaces the row for the
// (tenant, document type) pair; updated_at moves to now either way, which
// re-anchors the reset policy.
func (r *NumberingRepo) Upsert(ctx context.Context, cfg *numbering.Config) (*numbering.Config, error) {
	if id.IsNil(cfg.ID) {
		cfg.ID = id.New()
	}
	now := time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	q := psql.Insert(numberingTable).
		SetMap(StructToMap(cfg)).
		Suffix(`ON CONFLICT (tenant_id, document_type) DO UPDATE SET
			prefix = EXCLUDED.prefix,
			suffix = EXCLUDED.suffix,
			next_number = EXCLUDED.next_number,
			padding = EXCLUDED.padding,
			include_year = EXCLUDED.include_year,
			include_month = EXCLUDED.include_month,
			include_day = EXCLUDED.include_day,
			date_format = EXCLUDED.date_format,
			separator = EXCLUDED.separator,
			custom_format = EXCLUDED.custom_format,
			reset_yearly = EXCLUDED.reset_yearly,
			reset_monthly = EXCLUDED.reset_monthly,
			updated_at = EXCLUDED.updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert numbering config: %w", err)
	}

	return r.Get(ctx, cfg.TenantID, cfg.DocumentType)
}

// ReplaceAll implements numbering.Store. Delete and insert run in one
// transaction so readers never observe a partially replaced set.
func (r *NumberingRepo) ReplaceAll(ctx context.Context, tenantID id.ID, cfgs []*numbering.Config) ([]*numbering.Config, error) {
	err := r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		del := psql.Delete(numberingTable).Where(squirrel.Eq{"tenant_id": tenantID})
		sql, args, err := del.ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("delete numbering configs: %w", err)
		}

		now := time.Now()
		for _, cfg := range cfgs {
			cfg.TenantID = tenantID
			if id.IsNil(cfg.ID) {
				cfg.ID = id.New()
			}
			cfg.CreatedAt = now
			cfg.UpdatedAt = now

			ins := psql.Insert(numberingTable).SetMap(StructToMap(cfg))
			sql, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("build insert: %w", err)
			}
			if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
				if isUniqueViolation(err) {
					return apperror.NewDuplicate("numbering config", "document_type", string(cfg.DocumentType))
				}
				return fmt.Errorf("insert numbering config: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ListByTenant(ctx, tenantID)
}

// AtomicIncrement implements numbering.Store. The row is locked with
// SELECT ... FOR UPDATE, the reset policy applied, then the counter
// advanced, all in one transaction. Returns the pre-increment snapshot.
func (r *NumberingRepo) AtomicIncrement(ctx context.Context, tenantID id.ID, docType numbering.DocumentType, now time.Time) (*numbering.Config, error) {
	var snapshot *numbering.Config

	err := r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		q := psql.Select(numberingColumns...).
			From(numberingTable).
			Where(squirrel.Eq{"tenant_id": tenantID, "document_type": docType}).
			Suffix("FOR UPDATE")

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build select for update: %w", err)
		}

		var cfg numbering.Config
		if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &cfg, sql, args...); err != nil {
			if pgxscan.NotFound(err) {
				return apperror.NewNotFound("numbering config", string(docType))
			}
			return fmt.Errorf("lock numbering config: %w", err)
		}

		if numbering.ShouldReset(&cfg, now) {
			cfg.NextNumber = 1
		}

		upd := psql.Update(numberingTable).
			Set("next_number", cfg.NextNumber+1).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": cfg.ID})

		sql, args, err = upd.ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}
		if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("advance counter: %w", err)
		}

		snapshot = &cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// SetCounter implements numbering.Store.
func (r *NumberingRepo) SetCounter(ctx context.Context, tenantID id.ID, docType numbering.DocumentType, value int) error {
	q := psql.Update(numberingTable).
		Set("next_number", value).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"tenant_id": tenantID, "document_type": docType})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("numbering config", string(docType))
	}
	return nil
}
