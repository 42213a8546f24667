package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/usage"
)

const usageTable = "tenant_usage"

var usageColumns = ExtractDBColumns[usage.Record]()

// UsageRepo implements usage.Store.
type UsageRepo struct {
	tx *TxManager
}

var _ usage.Store = (*UsageRepo)(nil)

// NewUsageRepo creates a usage repository.
func NewUsageRepo(tx *TxManager) *UsageRepo {
	return &UsageRepo{tx: tx}
}

// ListByTenant implements usage.Store.
func (r *UsageRepo) ListByTenant(ctx context.Context, tenantID id.ID, limit int) ([]*usage.Record, error) {
	q := psql.Select(usageColumns...).
		From(usageTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("date DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []*usage.Record
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list usage records: %w", err)
	}
	return records, nil
}

// Upsert implements usage.Store. The row is keyed by (tenant_id, date).
func (r *UsageRepo) Upsert(ctx context.Context, rec *usage.Record) (*usage.Record, error) {
	var assignments []string
	for _, col := range usageColumns {
		switch col {
		case "id", "tenant_id", "date", "created_at":
			continue
		}
		assignments = append(assignments, col+" = EXCLUDED."+col)
	}

	q := psql.Insert(usageTable).
		SetMap(StructToMap(rec)).
		Suffix("ON CONFLICT (tenant_id, date) DO UPDATE SET " + strings.Join(assignments, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert usage record: %w", err)
	}
	return r.get(ctx, rec.TenantID, rec.Date)
}

func (r *UsageRepo) get(ctx context.Context, tenantID id.ID, date any) (*usage.Record, error) {
	q := psql.Select(usageColumns...).
		From(usageTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "date": date})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec usage.Record
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("usage record", tenantID.String())
		}
		return nil, fmt.Errorf("get usage record: %w", err)
	}
	return &rec, nil
}
