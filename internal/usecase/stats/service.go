package stats

import (
	"context"
	"time"
)

// Report is the stats snapshot served by the API.
type Report struct {
	SearchesToday    int64 `json:"searches_today"`
	EmergenciesToday int64 `json:"emergencies_today"`
	PogosToday       int64 `json:"pogos_today"`
	CacheHitsToday   int64 `json:"cache_hits_today"`
	ActiveSessions   int   `json:"active_sessions"`
	ClassifierLoaded bool  `json:"classifier_loaded"`
	UptimeSeconds    int64 `json:"uptime_s"`
}

// Service assembles stats reports.
type Service struct {
	tracker  *Tracker
	sessions SessionCounter
	model    ModelStatus
	started  time.Time
}

// New creates a stats service. sessions and model may be nil.
func New(tracker *Tracker, sessions SessionCounter, model ModelStatus) *Service {
	return &Service{
		tracker:  tracker,
		sessions: sessions,
		model:    model,
		started:  time.Now(),
	}
}

// Report builds the current snapshot.
func (s *Service) Report(_ context.Context) Report {
	r := Report{
		SearchesToday:    s.tracker.Today(CounterSearches),
		EmergenciesToday: s.tracker.Today(CounterEmergencies),
		PogosToday:       s.tracker.Today(CounterPogos),
		CacheHitsToday:   s.tracker.Today(CounterCacheHits),
		UptimeSeconds:    int64(time.Since(s.started).Seconds()),
	}
	if s.sessions != nil {
		r.ActiveSessions = s.sessions.ActiveSessions()
	}
	if s.model != nil {
		r.ClassifierLoaded = s.model.ModelLoaded()
	}
	return r
}
