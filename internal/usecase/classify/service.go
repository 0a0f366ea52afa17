// Package classify decides whether a query describes an emergency.
// The keyword heuristic always runs; the naive Bayes model is
// consulted only for enhanced requests and only above a confidence
// threshold, so a missing or misfiring model can never flip obvious
// queries.
package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/logger"
	"github.com/HeckerOO1/Search-engine/internal/metrics"
)

// Service runs the hybrid emergency classifier.
type Service struct {
	matcher   *KeywordMatcher
	model     *Model
	threshold float64
}

// New creates a classifier service. model may be nil, which disables
// the enhanced path.
func New(matcher *KeywordMatcher, model *Model, threshold float64) *Service {
	return &Service{matcher: matcher, model: model, threshold: threshold}
}

// Classify resolves the query's mode. Precedence: caller force flag,
// then keyword hit, then model prediction, then standard.
func (s *Service) Classify(ctx context.Context, q query.Query) mode.Decision {
	if q.ForceEmergency() {
		metrics.ClassifierTriggersTotal.WithLabelValues(string(mode.TriggerForced)).Inc()
		return mode.EmergencyDecision(1, mode.ForcedTrigger())
	}

	if triggers, conf := s.matcher.Match(q.Normalized()); len(triggers) > 0 {
		metrics.ClassifierTriggersTotal.WithLabelValues(string(mode.TriggerKeyword)).Inc()
		logger.FromContext(ctx).Debug("Keyword trigger",
			zap.String("term", triggers[0].Term()),
			zap.Int("hits", len(triggers)),
			zap.Float64("confidence", conf))
		return mode.EmergencyDecision(conf, triggers...)
	}

	if q.Enhanced() && s.model != nil {
		label, conf := s.model.Predict(q.Tokens())
		if label == LabelEmergency && conf >= s.threshold {
			metrics.ClassifierTriggersTotal.WithLabelValues(string(mode.TriggerModel)).Inc()
			logger.FromContext(ctx).Debug("Model trigger",
				zap.Float64("confidence", conf),
				zap.Float64("threshold", s.threshold))
			return mode.EmergencyDecision(conf, mode.ModelTrigger(conf))
		}
	}

	return mode.StandardDecision()
}

// ModelLoaded reports whether the trained model is available.
func (s *Service) ModelLoaded() bool { return s.model != nil }
