package satyadrishti

import (
	"context"
	"time"
)

// Stats is an operational usage snapshot.
type Stats struct {
	SearchesToday    int64
	EmergenciesToday int64
	PogosToday       int64
	CacheHitsToday   int64
	ActiveSessions   int
	ClassifierLoaded bool
	Uptime           time.Duration
}

// Stats reports daily counters, active sessions, and classifier
// state.
func (c *Client) Stats(ctx context.Context) Stats {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, nil) }()

	r := c.statsSvc.Report(ctx)
	return Stats{
		SearchesToday:    r.SearchesToday,
		EmergenciesToday: r.EmergenciesToday,
		PogosToday:       r.PogosToday,
		CacheHitsToday:   r.CacheHitsToday,
		ActiveSessions:   r.ActiveSessions,
		ClassifierLoaded: r.ClassifierLoaded,
		Uptime:           time.Duration(r.UptimeSeconds) * time.Second,
	}
}
