package stats

import (
	"context"
	"time"
)

// Store is the persistence interface for daily counters.
// Implementations must be idempotent (Incr can be called repeatedly).
type Store interface {
	Incr(ctx context.Context, name string, day time.Time) error
	Get(ctx context.Context, name string, day time.Time) (int64, error)
}

// SessionCounter reports live feedback sessions.
type SessionCounter interface {
	ActiveSessions() int
}

// ModelStatus reports classifier model readiness.
type ModelStatus interface {
	ModelLoaded() bool
}
