package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/beenayasoft/tenant-service/internal/core/appctx"
	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
)

// TenantHeader is the HTTP header for tenant identification.
const TenantHeader = "X-Tenant-ID"

// validationTTL bounds how stale a cached tenant lookup may be. Deactivated
// tenants keep working for at most this long.
const validationTTL = time.Minute

// TenantValidator is the slice of the tenant service the middleware needs.
type TenantValidator interface {
	Validate(ctx context.Context, tenantID id.ID) (*tenant.ValidationResult, error)
}

// TenantResolver resolves the X-Tenant-ID header into a TenantContext,
// caching validation results to keep one lookup per tenant per minute.
type TenantResolver struct {
	validator TenantValidator
	cache     *gocache.Cache
}

// NewTenantResolver creates a tenant resolver middleware factory.
func NewTenantResolver(validator TenantValidator) *TenantResolver {
	return &TenantResolver{
		validator: validator,
		cache:     gocache.New(validationTTL, 5*time.Minute),
	}
}

// Resolve extracts the tenant from the X-Tenant-ID header, checks that it
// exists and is active, and injects it into the request context.
// Routes that operate on per-tenant configuration MUST run behind it.
func (r *TenantResolver) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TenantHeader)
		if raw == "" {
			_ = c.Error(
				apperror.NewValidation("tenant is required").
					WithDetail("header", TenantHeader),
			)
			c.Abort()
			return
		}

		tenantID, err := id.Parse(raw)
		if err != nil {
			_ = c.Error(
				apperror.NewValidation("invalid tenant id").
					WithDetail("header", TenantHeader).
					WithDetail("value", raw),
			)
			c.Abort()
			return
		}

		result, err := r.validate(c.Request.Context(), tenantID)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if !result.Exists {
			_ = c.Error(apperror.NewNotFound("tenant", tenantID.String()))
			c.Abort()
			return
		}
		if !result.IsActive {
			_ = c.Error(
				apperror.NewForbidden("tenant is not active").
					WithDetail("tenant_id", tenantID.String()),
			)
			c.Abort()
			return
		}

		ctx := appctx.WithTenant(c.Request.Context(), &appctx.TenantContext{
			TenantID: tenantID,
			Name:     result.Name,
			IsActive: result.IsActive,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", tenantID.String())

		c.Next()
	}
}

func (r *TenantResolver) validate(ctx context.Context, tenantID id.ID) (*tenant.ValidationResult, error) {
	key := tenantID.String()
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*tenant.ValidationResult), nil
	}

	result, err := r.validator.Validate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, result, gocache.DefaultExpiration)
	return result, nil
}
