package postgres

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// upsertAllExcept builds an "ON CONFLICT (tenant_id) DO UPDATE" suffix
// assigning EXCLUDED values for every column except the listed ones.
// Used by the one-row-per-tenant tables (settings, bank info, appearance).
func upsertAllExcept(columns []string, except ...string) string {
	skip := make(map[string]bool, len(except))
	for _, col := range except {
		skip[col] = true
	}

	var assignments []string
	for _, col := range columns {
		if skip[col] {
			continue
		}
		assignments = append(assignments, col+" = EXCLUDED."+col)
	}
	return "ON CONFLICT (tenant_id) DO UPDATE SET " + strings.Join(assignments, ", ")
}
