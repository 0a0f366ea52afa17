// Package stats tracks daily usage counters and assembles the stats
// report.
package stats

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Counter names, shared with the persistence keys.
const (
	CounterSearches    = "searches"
	CounterEmergencies = "emergencies"
	CounterPogos       = "pogos"
	CounterCacheHits   = "cache_hits"
)

var allCounters = []string{CounterSearches, CounterEmergencies, CounterPogos, CounterCacheHits}

// Tracker is an in-memory daily counter set with optional persistence.
// The hot path updates memory first, then write-behind to the store.
type Tracker struct {
	mu           sync.Mutex
	counts       map[string]int64
	lastDayReset time.Time
	store        Store
	logger       *zap.Logger

	now func() time.Time
}

// NewTracker creates an in-memory tracker.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		counts: map[string]int64{},
		logger: logger,
		now:    time.Now,
	}
	t.lastDayReset = truncateToDay(t.now().UTC())
	return t
}

// WithStore attaches a persistence store and loads today's counters,
// so a restart keeps the day's totals.
func (t *Tracker) WithStore(ctx context.Context, store Store) *Tracker {
	t.store = store
	t.loadFromStore(ctx)
	return t
}

func (t *Tracker) loadFromStore(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := t.now().UTC()
	for _, name := range allCounters {
		val, err := t.store.Get(ctx, name, day)
		if err != nil {
			t.logger.Warn("Failed to load counter from store", zap.String("counter", name), zap.Error(err))
			continue
		}
		t.counts[name] = val
	}

	t.logger.Info("Stats loaded from store",
		zap.Int64("searches", t.counts[CounterSearches]),
		zap.Int64("emergencies", t.counts[CounterEmergencies]),
		zap.Int64("pogos", t.counts[CounterPogos]),
	)
}

// SearchServed counts one served search and its emergency decision.
func (t *Tracker) SearchServed(emergency bool) {
	t.add(CounterSearches)
	if emergency {
		t.add(CounterEmergencies)
	}
}

// CacheHit counts one response served from the rank cache.
func (t *Tracker) CacheHit() { t.add(CounterCacheHits) }

// PogoDetected counts one detected pogo-stick return.
func (t *Tracker) PogoDetected() { t.add(CounterPogos) }

// Today returns the named counter for the current UTC day.
func (t *Tracker) Today(name string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return t.counts[name]
}

// add bumps the in-memory counter, then write-behind to store (if attached).
func (t *Tracker) add(name string) {
	t.mu.Lock()
	t.resetIfNeeded()
	t.counts[name]++
	store := t.store
	day := t.now().UTC()
	t.mu.Unlock()

	if store == nil {
		return
	}

	// Write-behind: fire-and-forget INCR to store.
	// Uses background context so store writes don't bind to the caller.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := store.Incr(ctx, name, day); err != nil {
		t.logger.Warn("Failed to persist counter", zap.String("counter", name), zap.Error(err))
	}
}

// resetIfNeeded zeroes counters when the UTC day rolls over.
func (t *Tracker) resetIfNeeded() {
	today := truncateToDay(t.now().UTC())
	if today.After(t.lastDayReset) {
		t.counts = map[string]int64{}
		t.lastDayReset = today
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
