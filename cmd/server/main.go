// Package main is the entry point for the tenant configuration service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
	"github.com/beenayasoft/tenant-service/internal/domain/invitation"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
	"github.com/beenayasoft/tenant-service/internal/domain/provisioning"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/internal/domain/usage"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/geoip"
	v1 "github.com/beenayasoft/tenant-service/internal/infrastructure/http/v1"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/storage/postgres"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting tenant service")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	tenantRepo := postgres.NewTenantRepo(txManager)
	numberingRepo := postgres.NewNumberingRepo(txManager)
	vatRepo := postgres.NewVatRepo(txManager)
	termRepo := postgres.NewTermRepo(txManager)
	methodRepo := postgres.NewMethodRepo(txManager)
	appearanceRepo := postgres.NewAppearanceRepo(txManager)
	invitationRepo := postgres.NewInvitationRepo(txManager)
	usageRepo := postgres.NewUsageRepo(txManager)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	// --- Provisioning ---
	provisioner := provisioning.New(tenantRepo, provisioningTargets(), provisioning.Options{
		PerServiceTimeout: getEnvDuration("PROVISION_TIMEOUT", 5*time.Minute),
		RetryMax:          getEnvInt("PROVISION_RETRY_MAX", 3),
	})

	// --- Services ---
	locator := geoip.NewClient(getEnv("GEOIP_BASE_URL", ""))
	vatService := vat.NewService(vatRepo)
	tenantService := tenant.NewService(tenantRepo, locator, provisioner, vatService)
	paymentService := payment.NewService(termRepo, methodRepo)
	numberingService := numbering.NewService(numberingRepo, tenantService)
	appearanceService := appearance.NewService(appearanceRepo)
	invitationService := invitation.NewService(invitationRepo, tenantService)
	usageService := usage.NewService(usageRepo, tenantService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:        pool,
		Logger:      log,
		Version:     version,
		Audit:       auditService,
		Tenants:     tenantService,
		VATRates:    vatService,
		Payments:    paymentService,
		Numbering:   numberingService,
		Appearance:  appearanceService,
		Invitations: invitationService,
		Usage:       usageService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// provisioningTargets parses PROVISION_TARGETS, a comma-separated list
// of name=url pairs ("CRM=http://crm:8000,Facturation=http://billing:8000").
func provisioningTargets() []provisioning.Target {
	raw := os.Getenv("PROVISION_TARGETS")
	if raw == "" {
		return nil
	}

	var targets []provisioning.Target
	for _, pair := range strings.Split(raw, ",") {
		name, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || url == "" {
			continue
		}
		targets = append(targets, provisioning.Target{
			Name:    name,
			BaseURL: strings.TrimRight(url, "/"),
		})
	}
	return targets
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
