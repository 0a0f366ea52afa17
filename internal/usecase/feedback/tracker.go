// Package feedback turns click and return events into pogo-stick
// signals. A click followed by a quick return means the result did not
// answer the query; repeated offenders get demoted by scoring.
package feedback

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tracker defaults.
const (
	DefaultPogoWindow    = 10 * time.Second
	DefaultSessionTTL    = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
)

// linkState is the per-link interaction state inside one session.
type linkState struct {
	clicked   bool
	clickedAt time.Time
	pogoCount int
}

// session holds all link states for one session id.
type session struct {
	links    map[string]*linkState
	lastSeen time.Time
}

// Tracker keeps per-session interaction state in memory. Sessions
// expire after a TTL; a background sweep reclaims them so the map
// cannot grow without bound.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*session

	window    time.Duration
	ttl       time.Duration
	sweepEach time.Duration
	logger    *zap.Logger

	stop chan struct{}
	done chan struct{}

	now func() time.Time
}

// NewTracker creates a tracker. Zero durations pick the defaults.
func NewTracker(window, ttl, sweepEach time.Duration, logger *zap.Logger) *Tracker {
	if window <= 0 {
		window = DefaultPogoWindow
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if sweepEach <= 0 {
		sweepEach = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		sessions:  make(map[string]*session),
		window:    window,
		ttl:       ttl,
		sweepEach: sweepEach,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordClick marks a link clicked. A repeat click restarts the
// return window.
func (t *Tracker) RecordClick(sessionID, link string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(sessionID, at)
	st := s.links[link]
	if st == nil {
		st = &linkState{}
		s.links[link] = st
	}
	st.clicked = true
	st.clickedAt = at
}

// RecordReturn processes a return-to-results event. It reports whether
// this return counts as a pogo-stick and the link's running count.
// A return with no prior click, or one outside the window, is not a
// pogo.
func (t *Tracker) RecordReturn(sessionID, link string, at time.Time) (bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(sessionID, at)
	st := s.links[link]
	if st == nil || !st.clicked {
		return false, 0
	}

	elapsed := at.Sub(st.clickedAt)
	st.clicked = false
	if elapsed < 0 || elapsed > t.window {
		return false, st.pogoCount
	}
	st.pogoCount++
	return true, st.pogoCount
}

// PogoCount reports the pogo count for one link in one session.
func (t *Tracker) PogoCount(sessionID, link string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[sessionID]
	if !ok {
		return 0
	}
	st, ok := s.links[link]
	if !ok {
		return 0
	}
	return st.pogoCount
}

// ActiveSessions reports how many sessions are currently tracked.
func (t *Tracker) ActiveSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Start launches the background sweep. Call Stop to shut it down.
// Start is not safe to call twice without an intervening Stop.
func (t *Tracker) Start() {
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.sweepEach)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := t.Sweep(t.now()); removed > 0 {
					t.logger.Debug("Swept expired sessions", zap.Int("removed", removed))
				}
			case <-t.stop:
				return
			}
		}
	}()
}

// Stop halts the background sweep and waits for it to exit.
func (t *Tracker) Stop() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop = nil
}

// Sweep drops sessions idle past the TTL and returns how many were
// removed.
func (t *Tracker) Sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, s := range t.sessions {
		if now.Sub(s.lastSeen) > t.ttl {
			delete(t.sessions, id)
			removed++
		}
	}
	return removed
}

// session returns the session, creating it when absent, and bumps its
// freshness. Caller holds the lock.
func (t *Tracker) session(id string, at time.Time) *session {
	s, ok := t.sessions[id]
	if !ok {
		s = &session{links: make(map[string]*linkState)}
		t.sessions[id] = s
	}
	if at.After(s.lastSeen) {
		s.lastSeen = at
	}
	return s
}
