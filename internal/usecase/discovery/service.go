// Package discovery walks the provider tiers in priority order until
// enough results accumulate. Tiers run sequentially; later tiers are
// consulted only when earlier ones under-deliver.
package discovery

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/domain"
	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/logger"
	"github.com/HeckerOO1/Search-engine/internal/metrics"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

// Defaults for the tier walk.
const (
	DefaultTierTimeout     = 10 * time.Second
	DefaultEmergencyWindow = 168 * time.Hour
	DefaultCorroboration   = 2
)

// Tier pairs an adapter with its per-tier timeout.
type Tier struct {
	Adapter Adapter
	Timeout time.Duration
}

// Outcome is what one discovery walk produced.
type Outcome struct {
	// Results is deduplicated, in first-seen order.
	Results []result.Result
	// TiersAttempted lists every tier consulted, in order.
	TiersAttempted []string
	// Exhausted is set when the walk ran out of tiers before reaching
	// the requested result count.
	Exhausted bool
}

// Service orchestrates the tier walk.
type Service struct {
	tiers           []Tier
	defaultTimeout  time.Duration
	emergencyWindow time.Duration
	corroboration   int

	now func() time.Time
}

// New creates the orchestrator. Zero values pick the defaults; the
// corroboration requirement is capped at the tier count.
func New(tiers []Tier, defaultTimeout, emergencyWindow time.Duration, corroboration int) *Service {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTierTimeout
	}
	if emergencyWindow <= 0 {
		emergencyWindow = DefaultEmergencyWindow
	}
	if corroboration <= 0 {
		corroboration = DefaultCorroboration
	}
	if corroboration > len(tiers) && len(tiers) > 0 {
		corroboration = len(tiers)
	}
	return &Service{
		tiers:           tiers,
		defaultTimeout:  defaultTimeout,
		emergencyWindow: emergencyWindow,
		corroboration:   corroboration,
		now:             time.Now,
	}
}

// Discover runs the walk. A failing tier is logged and skipped, never
// fatal; the caller's context cancels the remainder and returns what
// was gathered so far. In emergency mode results older than the
// freshness window are dropped, results with no date are kept, and
// early stop additionally requires the corroboration quorum of
// contributing tiers.
func (s *Service) Discover(ctx context.Context, q query.Query, d mode.Decision) (Outcome, error) {
	var out Outcome
	seen := make(map[string]int)
	target := q.MaxResults()

	var cutoff time.Time
	if d.IsEmergency() {
		cutoff = s.now().Add(-s.emergencyWindow)
	}

	contributed := 0
	for _, tier := range s.tiers {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		name := tier.Adapter.Name()
		out.TiersAttempted = append(out.TiersAttempted, name)

		timeout := tier.Timeout
		if timeout <= 0 {
			timeout = s.defaultTimeout
		}
		tctx, cancel := context.WithTimeout(ctx, timeout)
		start := time.Now()
		batch, err := tier.Adapter.Fetch(tctx, q.Normalized(), provider.Constraints{
			MaxResults:      target,
			FreshnessCutoff: cutoff,
		})
		cancel()
		metrics.TierDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			status := "error"
			if errors.Is(err, context.DeadlineExceeded) {
				status = "timeout"
			}
			metrics.TierAttemptsTotal.WithLabelValues(name, status).Inc()
			logger.FromContext(ctx).Warn("Tier failed, falling through",
				zap.String("tier", name),
				zap.String("status", status),
				zap.Error(domain.NewAdapterError(name, err)))
			continue
		}

		if len(batch) == 0 {
			metrics.TierAttemptsTotal.WithLabelValues(name, "empty").Inc()
			continue
		}
		metrics.TierAttemptsTotal.WithLabelValues(name, "ok").Inc()

		if added := merge(&out, seen, batch, cutoff); added > 0 {
			contributed++
		}

		if len(out.Results) >= target {
			if !d.IsEmergency() || contributed >= s.corroboration {
				return out, nil
			}
		}
	}

	out.Exhausted = true
	return out, nil
}

// merge folds a tier batch into the outcome. First sighting of a
// canonical link wins its slot; later duplicates only backfill fields
// the first sighting was missing.
func merge(out *Outcome, seen map[string]int, batch []result.Result, cutoff time.Time) int {
	added := 0
	for _, r := range batch {
		if !cutoff.IsZero() {
			if pub, ok := r.Published(); ok && pub.Before(cutoff) {
				continue
			}
		}
		key := r.Canonical()
		if key == "" {
			continue
		}
		if idx, ok := seen[key]; ok {
			out.Results[idx].FillMissing(r)
			continue
		}
		seen[key] = len(out.Results)
		out.Results = append(out.Results, r)
		added++
	}
	return added
}
