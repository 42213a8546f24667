// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
	"github.com/beenayasoft/tenant-service/internal/domain/invitation"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/internal/domain/usage"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/handlers"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1/middleware"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/storage/postgres"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// RouterConfig holds the services the router wires into handlers.
type RouterConfig struct {
	Pool    *postgres.Pool
	Logger  *logger.Logger
	Version string

	// Audit records configuration changes. Optional.
	Audit *postgres.AuditService

	Tenants     *tenant.Service
	VATRates    *vat.Service
	Payments    *payment.Service
	Numbering   *numbering.Service
	Appearance  *appearance.Service
	Invitations *invitation.Service
	Usage       *usage.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	tenantHandler := handlers.NewTenantHandler(base, cfg.Tenants, cfg.VATRates, cfg.Payments, cfg.Numbering, cfg.Appearance)
	numberingHandler := handlers.NewNumberingHandler(base, cfg.Numbering, cfg.Audit)
	vatHandler := handlers.NewVATHandler(base, cfg.VATRates)
	paymentHandler := handlers.NewPaymentHandler(base, cfg.Payments, cfg.Tenants)
	appearanceHandler := handlers.NewAppearanceHandler(base, cfg.Appearance, cfg.Audit)
	invitationHandler := handlers.NewInvitationHandler(base, cfg.Invitations)
	usageHandler := handlers.NewUsageHandler(base, cfg.Usage)

	resolver := middleware.NewTenantResolver(cfg.Tenants)

	v1 := router.Group("/api/v1")
	{
		// Registration and lookup do not require the tenant header.
		tenants := v1.Group("/tenants")
		{
			tenants.POST("", tenantHandler.Create)
			tenants.GET("", tenantHandler.List)

			// Tenant-scoped onboarding and composite views. Registered
			// before /:id so Gin does not treat them as IDs.
			scoped := tenants.Group("")
			scoped.Use(resolver.Resolve())
			{
				scoped.GET("/current", tenantHandler.Current)
				scoped.PATCH("/current", tenantHandler.UpdateCurrent)
				scoped.GET("/setup-progress", tenantHandler.SetupProgress)
				scoped.POST("/retry-setup", tenantHandler.RetrySetup)
			}

			tenants.GET("/:id", tenantHandler.Get)
			tenants.PATCH("/:id", tenantHandler.Update)
			tenants.GET("/:id/validate", tenantHandler.Validate)

			tenants.GET("/:id/invitations", invitationHandler.List)
			tenants.POST("/:id/invite", invitationHandler.Invite)
			tenants.DELETE("/:id/invitations/:invitation_id", invitationHandler.Revoke)
			tenants.GET("/:id/usage", usageHandler.List)
			tenants.POST("/:id/usage", usageHandler.Record)
		}

		// Token-based acceptance, called by the auth service.
		v1.POST("/invitations/accept", invitationHandler.Accept)

		// All configuration routes operate on the tenant named by the
		// X-Tenant-ID header.
		cfgRoutes := v1.Group("")
		cfgRoutes.Use(resolver.Resolve())
		{
			num := cfgRoutes.Group("/numbering")
			{
				num.GET("", numberingHandler.List)
				num.POST("", numberingHandler.Upsert)
				num.PUT("", numberingHandler.ReplaceAll)
				num.POST("/preview", numberingHandler.Preview)
				num.GET("/:document_type", numberingHandler.Get)
				num.POST("/:document_type/generate", numberingHandler.Generate)
				num.PATCH("/:document_type/increment", numberingHandler.Increment)
				num.POST("/:document_type/reset", numberingHandler.Reset)
			}

			vatRoutes := cfgRoutes.Group("/vat-rates")
			{
				vatRoutes.GET("", vatHandler.List)
				vatRoutes.POST("", vatHandler.Create)
				vatRoutes.GET("/defaults", vatHandler.Defaults)
				vatRoutes.PUT("/:id", vatHandler.Update)
				vatRoutes.DELETE("/:id", vatHandler.Delete)
			}

			terms := cfgRoutes.Group("/payment-terms")
			{
				terms.GET("", paymentHandler.ListTerms)
				terms.POST("", paymentHandler.CreateTerm)
				terms.PUT("/:id", paymentHandler.UpdateTerm)
				terms.DELETE("/:id", paymentHandler.DeleteTerm)
			}

			methods := cfgRoutes.Group("/payment-methods")
			{
				methods.GET("", paymentHandler.ListMethods)
				methods.POST("", paymentHandler.CreateMethod)
				methods.GET("/types", paymentHandler.MethodTypes)
				methods.POST("/defaults", paymentHandler.CreateDefaultMethods)
				methods.GET("/:id", paymentHandler.GetMethod)
				methods.PUT("/:id", paymentHandler.UpdateMethod)
				methods.DELETE("/:id", paymentHandler.DeleteMethod)
			}

			app := cfgRoutes.Group("/appearance")
			{
				app.GET("", appearanceHandler.Get)
				app.PATCH("", appearanceHandler.Update)
				app.POST("/apply-preset", appearanceHandler.ApplyPreset)
				app.GET("/defaults", appearanceHandler.Defaults)
				app.GET("/templates", appearanceHandler.Templates)
				app.GET("/presets", appearanceHandler.Presets)
				app.GET("/colors", appearanceHandler.Colors)
				app.GET("/logo-positions", appearanceHandler.LogoPositions)
				app.GET("/table-styles", appearanceHandler.TableStyles)
			}
		}
	}

	return router
}
