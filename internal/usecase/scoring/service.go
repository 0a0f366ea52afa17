// Package scoring ranks discovered results. Every result gets
// relevance, freshness, trust, and sensationalism signals; the active
// mode picks the weight profile that combines them.
package scoring

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/domain/candidate"
	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/domain/trust"
	"github.com/HeckerOO1/Search-engine/internal/logger"
)

// pogoFactor damps repeated pogo-sticking with diminishing returns:
// the subtracted penalty is 1 - 1/(1+pogoFactor*count), so it grows
// toward 1 but never dominates a strong result outright.
const pogoFactor = 0.3

func pogoPenalty(count int) float64 {
	if count <= 0 {
		return 0
	}
	return 1 - 1/(1+pogoFactor*float64(count))
}

// Weights is one scoring profile. Sensationalism is stored positive
// and applied as a penalty.
type Weights struct {
	Relevance      float64
	Freshness      float64
	Trust          float64
	Sensationalism float64
}

// DefaultProfiles returns the built-in weight profiles per mode.
func DefaultProfiles() map[string]Weights {
	return map[string]Weights{
		string(mode.Standard):  {Relevance: 0.85, Trust: 0.15},
		string(mode.Emergency): {Relevance: 0.35, Freshness: 0.30, Trust: 0.35, Sensationalism: 0.40},
	}
}

// Service scores and orders result batches.
type Service struct {
	trust    trust.Table
	profiles map[string]Weights
	semantic SemanticScorer
	pogo     PogoSource
	blend    float64

	now func() time.Time
}

// New creates a scoring service. semantic and pogo may be nil; blend
// is the semantic share of the relevance signal when semantic scoring
// is available.
func New(table trust.Table, profiles map[string]Weights, semantic SemanticScorer, pogo PogoSource, blend float64) *Service {
	if table.Len() == 0 {
		table = trust.DefaultTable()
	}
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	return &Service{
		trust:    table,
		profiles: profiles,
		semantic: semantic,
		pogo:     pogo,
		blend:    blend,
		now:      time.Now,
	}
}

// Rank scores the batch under the decided mode and returns candidates
// ordered best first. The sort is stable, so equal scores keep
// discovery order.
func (s *Service) Rank(ctx context.Context, q query.Query, d mode.Decision, results []result.Result) []candidate.Candidate {
	if len(results) == 0 {
		return nil
	}

	profile, ok := s.profiles[string(d.Mode())]
	if !ok {
		profile = s.profiles[string(mode.Standard)]
	}
	now := s.now()
	emergency := d.IsEmergency()

	docs := make([]string, len(results))
	for i, r := range results {
		docs[i] = r.Title() + " " + r.Snippet()
	}
	rel := lexicalScores(q.Normalized(), docs)

	if s.semantic != nil && s.blend > 0 {
		sem, err := s.semantic.Similarity(ctx, q.Normalized(), docs)
		if err != nil {
			logger.FromContext(ctx).Warn("Semantic scoring unavailable, using lexical only", zap.Error(err))
		} else if len(sem) == len(rel) {
			for i := range rel {
				rel[i] = (1-s.blend)*rel[i] + s.blend*clamp01(sem[i])
			}
		}
	}

	out := make([]candidate.Candidate, 0, len(results))
	for i, r := range results {
		pub, hasDate := r.Published()
		if !hasDate {
			if t, found := parseSnippetDate(r.Snippet(), now); found {
				pub, hasDate = t, true
			}
		}

		fresh := unknownFreshness(emergency)
		label := candidate.UnknownAge
		if hasDate {
			age := now.Sub(pub)
			if age < 0 {
				age = 0
			}
			fresh = freshnessScore(age, emergency)
			label = freshnessLabel(age)
		}

		tr := trustScore(s.trust, r)
		sens := sensationalism(r.Title(), r.Snippet())

		pogoCount := 0
		if s.pogo != nil && q.SessionID() != "" {
			pogoCount = s.pogo.PogoCount(q.SessionID(), r.Canonical())
		}

		final := profile.Relevance*rel[i] +
			profile.Freshness*fresh +
			profile.Trust*tr -
			profile.Sensationalism*sens -
			pogoPenalty(pogoCount)
		final = clamp01(final)

		out = append(out, candidate.New(r, candidate.Signals{
			Relevance:      rel[i],
			Freshness:      fresh,
			FreshnessLabel: label,
			Trust:          tr,
			Sensationalism: sens,
			PogoCount:      pogoCount,
		}, final))
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].FinalScore() > out[b].FinalScore()
	})
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
