package companydex

import (
	"context"

	healthuc "github.com/kailas-cloud/companydex/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"missing"/"error"/"skipped"
}

// Healthy reports whether every component passed.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// Health checks the store connection and the company index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
