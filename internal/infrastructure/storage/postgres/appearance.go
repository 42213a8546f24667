package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
)

const appearanceTable = "tenant_document_appearance"

var appearanceColumns = ExtractDBColumns[appearance.Config]()

// AppearanceRepo implements appearance.Store. Each tenant has at most
// one row, keyed by tenant_id.
type AppearanceRepo struct {
	tx *TxManager
}

var _ appearance.Store = (*AppearanceRepo)(nil)

// NewAppearanceRepo creates an appearance config repository.
func NewAppearanceRepo(tx *TxManager) *AppearanceRepo {
	return &AppearanceRepo{tx: tx}
}

// Get implements appearance.Store.
func (r *AppearanceRepo) Get(ctx context.Context, tenantID id.ID) (*appearance.Config, error) {
	q := psql.Select(appearanceColumns...).
		From(appearanceTable).
		Where(squirrel.Eq{"tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var cfg appearance.Config
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &cfg, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("appearance config", tenantID.String())
		}
		return nil, fmt.Errorf("get appearance config: %w", err)
	}
	return &cfg, nil
}

// Upsert implements appearance.Store.
func (r *AppearanceRepo) Upsert(ctx context.Context, cfg *appearance.Config) (*appearance.Config, error) {
	cfg.UpdatedAt = time.Now()

	q := psql.Insert(appearanceTable).
		SetMap(StructToMap(cfg)).
		Suffix(upsertAllExcept(appearanceColumns, "id", "tenant_id", "created_at"))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert appearance config: %w", err)
	}
	return r.Get(ctx, cfg.TenantID)
}
