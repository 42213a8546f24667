package appctx

import (
	"context"

	"github.com/google/uuid"
)

// TenantContext identifies the tenant a request operates on. It is resolved
// from the X-Tenant-ID header by middleware before any domain code runs.
type TenantContext struct {
	TenantID uuid.UUID
	Name     string
	IsActive bool
}

type tenantContextKey struct{}

// WithTenant adds TenantContext to context.
func WithTenant(ctx context.Context, tenant *TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenant)
}

// GetTenant returns TenantContext from context, or nil outside a
// tenant-scoped request.
func GetTenant(ctx context.Context) *TenantContext {
	if v, ok := ctx.Value(tenantContextKey{}).(*TenantContext); ok {
		return v
	}
	return nil
}

// GetTenantID returns the tenant ID from context or empty string.
func GetTenantID(ctx context.Context) string {
	if t := GetTenant(ctx); t != nil {
		return t.TenantID.String()
	}
	return ""
}

// MustGetTenantID returns the tenant UUID or panics. Use only on routes
// behind the tenant middleware, where a missing tenant is a programming error.
func MustGetTenantID(ctx context.Context) uuid.UUID {
	t := GetTenant(ctx)
	if t == nil {
		panic("tenant not in context: missing tenant middleware")
	}
	return t.TenantID
}
