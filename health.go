package satyadrishti

import (
	"context"
	"time"

	healthuc "github.com/HeckerOO1/Search-engine/internal/usecase/health"
)

// HealthStatus is the aggregate engine condition.
type HealthStatus string

const (
	// HealthOK means all components are operational.
	HealthOK HealthStatus = "ok"
	// HealthDegraded means the engine serves with reduced
	// capability, e.g. heuristic-only classification.
	HealthDegraded HealthStatus = "degraded"
	// HealthError means a required component is down.
	HealthError HealthStatus = "error"
)

// HealthReport carries the aggregate status plus per-check results.
type HealthReport struct {
	Status HealthStatus
	Checks map[string]string
}

// Health runs the component checks.
func (c *Client) Health(ctx context.Context) HealthReport {
	start := time.Now()
	defer func() { c.obs.observe("health", start, nil) }()

	r := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(r.Checks))
	for name, res := range r.Checks {
		checks[name] = string(res)
	}
	return HealthReport{Status: fromHealthStatus(r.Status), Checks: checks}
}

func fromHealthStatus(s healthuc.Status) HealthStatus {
	switch s {
	case healthuc.Healthy:
		return HealthOK
	case healthuc.Degraded:
		return HealthDegraded
	default:
		return HealthError
	}
}
