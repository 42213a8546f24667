// Package provisioning drives the asynchronous creation of a tenant's
// schemas in sibling services. Each target service exposes an internal
// migration endpoint; progress and outcome are tracked on the tenant row
// and served by the setup-progress endpoint.
package provisioning

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/beenayasoft/tenant-service/internal/core/id"
	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// Target is one sibling service whose schema must be migrated for a new
// tenant.
type Target struct {
	// Name is the display name shown in progress messages ("CRM").
	Name string
	// BaseURL is the service root, without trailing slash.
	BaseURL string
}

// StateStore persists provisioning state. Satisfied by the tenant store.
type StateStore interface {
	UpdateSchemaState(ctx context.Context, tenantID id.ID, status tenant.SchemaStatus, progress *tenant.SchemaProgress, schemaErr string, readyAt *time.Time) error
}

// Options tune the provisioner.
type Options struct {
	// PerServiceTimeout bounds one migration call, retries included.
	PerServiceTimeout time.Duration
	// RetryMax is the per-request retry budget.
	RetryMax int
}

// Provisioner runs schema provisioning in background goroutines, one per
// tenant. Start never blocks the caller.
type Provisioner struct {
	targets []Target
	store   StateStore
	client  *http.Client
	timeout time.Duration
}

// New creates a provisioner for the given targets.
func New(store StateStore, targets []Target, opts Options) *Provisioner {
	if opts.PerServiceTimeout <= 0 {
		opts.PerServiceTimeout = 5 * time.Minute
	}
	if opts.RetryMax <= 0 {
		opts.RetryMax = 3
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = time.Second
	rc.RetryWaitMax = 15 * time.Second
	rc.Logger = nil

	return &Provisioner{
		targets: targets,
		store:   store,
		client:  rc.StandardClient(),
		timeout: opts.PerServiceTimeout,
	}
}

// Start launches provisioning for the tenant in the background.
func (p *Provisioner) Start(tenantID id.ID) {
	go p.run(tenantID)
}

func (p *Provisioner) run(tenantID id.ID) {
	// Detached from the request that created the tenant.
	ctx := context.Background()
	total := len(p.targets) + 1

	logger.Info(ctx, "schema provisioning started", "tenant_id", tenantID)

	if err := p.setProgress(ctx, tenantID, tenant.SchemaCreating, 0, total,
		"Initialisation de la création des schémas...", ""); err != nil {
		logger.Error(ctx, "failed to mark provisioning as creating", "tenant_id", tenantID, "error", err)
		return
	}

	for i, target := range p.targets {
		step := i + 1
		if err := p.setProgress(ctx, tenantID, tenant.SchemaCreating, step, total,
			fmt.Sprintf("Configuration du service %s...", target.Name), target.Name); err != nil {
			logger.Error(ctx, "failed to record provisioning progress", "tenant_id", tenantID, "error", err)
		}

		if err := p.migrate(ctx, target, tenantID); err != nil {
			msg := fmt.Sprintf("Erreur lors de la configuration du service %s: %v", target.Name, err)
			logger.Error(ctx, "schema provisioning failed",
				"tenant_id", tenantID,
				"service", target.Name,
				"error", err,
			)
			p.fail(ctx, tenantID, total, msg)
			return
		}
		logger.Info(ctx, "service schema ready", "tenant_id", tenantID, "service", target.Name)
	}

	now := time.Now()
	progress := &tenant.SchemaProgress{
		CurrentStep: total,
		TotalSteps:  total,
		Message:     "Configuration terminée ! Tous vos services sont prêts.",
		UpdatedAt:   now,
	}
	if err := p.store.UpdateSchemaState(ctx, tenantID, tenant.SchemaReady, progress, "", &now); err != nil {
		logger.Error(ctx, "failed to mark provisioning as ready", "tenant_id", tenantID, "error", err)
		return
	}
	logger.Info(ctx, "schema provisioning completed", "tenant_id", tenantID)
}

// migrate calls the target's internal migration endpoint.
func (p *Provisioner) migrate(ctx context.Context, target Target, tenantID id.ID) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/internal/tenants/%s/migrate", target.BaseURL, tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, target.Name)
	}
	return nil
}

func (p *Provisioner) setProgress(ctx context.Context, tenantID id.ID, status tenant.SchemaStatus, step, total int, message, service string) error {
	return p.store.UpdateSchemaState(ctx, tenantID, status, &tenant.SchemaProgress{
		CurrentStep: step,
		TotalSteps:  total,
		Message:     message,
		Service:     service,
		UpdatedAt:   time.Now(),
	}, "", nil)
}

func (p *Provisioner) fail(ctx context.Context, tenantID id.ID, total int, msg string) {
	progress := &tenant.SchemaProgress{
		CurrentStep: 0,
		TotalSteps:  total,
		Message:     msg,
		Service:     "error",
		UpdatedAt:   time.Now(),
	}
	if err := p.store.UpdateSchemaState(ctx, tenantID, tenant.SchemaError, progress, msg, nil); err != nil {
		logger.Error(ctx, "failed to mark provisioning as errored", "tenant_id", tenantID, "error", err)
	}
}
