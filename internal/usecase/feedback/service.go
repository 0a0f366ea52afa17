package feedback

import (
	"context"

	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/domain"
	domfb "github.com/HeckerOO1/Search-engine/internal/domain/feedback"
	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/logger"
	"github.com/HeckerOO1/Search-engine/internal/metrics"
)

// DefaultDemoteThreshold is the pogo count at which a link is flagged
// as demoted for the session.
const DefaultDemoteThreshold = 3

// Invalidator drops cached rankings for a session once its feedback
// changes how results should score.
type Invalidator interface {
	InvalidateSession(ctx context.Context, sessionID string) error
}

// Usage records daily counters for detected pogos.
type Usage interface {
	PogoDetected()
}

// Outcome reports what one feedback event changed.
type Outcome struct {
	PogoDetected bool
	PogoCount    int
	Demoted      bool
}

// Service applies feedback events to the tracker plus side effects.
type Service struct {
	tracker         *Tracker
	cache           Invalidator
	usage           Usage
	demoteThreshold int
}

// New creates a feedback service. cache may be nil.
func New(tracker *Tracker, cache Invalidator, demoteThreshold int) *Service {
	if demoteThreshold <= 0 {
		demoteThreshold = DefaultDemoteThreshold
	}
	return &Service{tracker: tracker, cache: cache, demoteThreshold: demoteThreshold}
}

// WithUsage attaches a daily counter sink for pogo events.
func (s *Service) WithUsage(u Usage) *Service {
	s.usage = u
	return s
}

// Record applies one event. Links are canonicalized first so feedback
// and discovery agree on identity.
func (s *Service) Record(ctx context.Context, ev domfb.Event) (Outcome, error) {
	link := result.CanonicalizeLink(ev.URL())
	metrics.FeedbackEventsTotal.WithLabelValues(string(ev.Action())).Inc()

	switch ev.Action() {
	case domfb.Click:
		s.tracker.RecordClick(ev.SessionID(), link, ev.At())
		return Outcome{PogoCount: s.tracker.PogoCount(ev.SessionID(), link)}, nil

	case domfb.Return:
		pogo, count := s.tracker.RecordReturn(ev.SessionID(), link, ev.At())
		if pogo {
			metrics.PogoEventsTotal.Inc()
			if s.usage != nil {
				s.usage.PogoDetected()
			}
			logger.FromContext(ctx).Debug("Pogo-stick detected",
				zap.String("session_id", ev.SessionID()),
				zap.String("link", link),
				zap.Int("count", count))
			if s.cache != nil {
				if err := s.cache.InvalidateSession(ctx, ev.SessionID()); err != nil {
					logger.FromContext(ctx).Warn("Rank cache invalidation failed",
						zap.String("session_id", ev.SessionID()), zap.Error(err))
				}
			}
		}
		return Outcome{
			PogoDetected: pogo,
			PogoCount:    count,
			Demoted:      count >= s.demoteThreshold,
		}, nil

	default:
		return Outcome{}, domain.ErrInvalidAction
	}
}

// PogoCount reports the session's pogo count for a canonical link.
// It satisfies the scoring service's pogo source contract.
func (s *Service) PogoCount(sessionID, link string) int {
	return s.tracker.PogoCount(sessionID, link)
}

// ActiveSessions reports how many sessions the tracker holds.
func (s *Service) ActiveSessions() int { return s.tracker.ActiveSessions() }
