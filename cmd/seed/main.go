// Package main provides a CLI tool for seeding a demo tenant with its
// default configuration.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/domain/appearance"
	"github.com/beenayasoft/tenant-service/internal/domain/numbering"
	"github.com/beenayasoft/tenant-service/internal/domain/payment"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/internal/domain/vat"
	"github.com/beenayasoft/tenant-service/internal/infrastructure/storage/postgres"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedDemoTenant(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed demo tenant", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedDemoTenant(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)
	tenantRepo := postgres.NewTenantRepo(txManager)

	name := os.Getenv("DEMO_TENANT_NAME")
	if name == "" {
		name = "Entreprise Démo"
	}

	vatService := vat.NewService(postgres.NewVatRepo(txManager))
	tenantService := tenant.NewService(tenantRepo, nil, nil, vatService)

	demo := tenant.NewTenant(name)
	demo.Email = "contact@demo.example"
	demo.City = "Casablanca"
	demo.Country = "Maroc"

	created, err := tenantService.Create(ctx, demo, "")
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
			log.Infow("demo tenant already exists", "name", name)
			return nil
		}
		return err
	}
	log.Infow("demo tenant created", "tenant_id", created.ID, "slug", created.Slug)

	// Numbering configs spring into existence on first access.
	numberingService := numbering.NewService(postgres.NewNumberingRepo(txManager), tenantService)
	for _, docType := range numbering.DocumentTypes() {
		if _, err := numberingService.GetConfig(ctx, created.ID, docType); err != nil {
			return fmt.Errorf("seed numbering %s: %w", docType, err)
		}
	}

	// Default payment methods, filled from the tenant profile.
	paymentService := payment.NewService(postgres.NewTermRepo(txManager), postgres.NewMethodRepo(txManager))
	if _, err := paymentService.CreateDefaultMethods(ctx, created.ID, created.Name, created.FullAddress()); err != nil {
		return fmt.Errorf("seed payment methods: %w", err)
	}

	// Appearance defaults are materialized by the first read.
	appearanceService := appearance.NewService(postgres.NewAppearanceRepo(txManager))
	if _, err := appearanceService.Get(ctx, created.ID); err != nil {
		return fmt.Errorf("seed appearance: %w", err)
	}

	log.Infow("demo tenant configured",
		"tenant_id", created.ID,
		"numbering_types", len(numbering.DocumentTypes()),
	)
	return nil
}
