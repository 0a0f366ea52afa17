// Package search runs the pipeline for one query: classify, consult
// the response cache, discover across provider tiers, retry once with
// a spell-corrected query when discovery under-delivers, rank, cache,
// respond.
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/HeckerOO1/Search-engine/internal/domain/candidate"
	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/logger"
	"github.com/HeckerOO1/Search-engine/internal/metrics"
	"github.com/HeckerOO1/Search-engine/internal/usecase/discovery"
)

// Item is one ranked result as served to clients.
type Item struct {
	Title          string     `json:"title"`
	Link           string     `json:"link"`
	Snippet        string     `json:"snippet,omitempty"`
	Source         string     `json:"source,omitempty"`
	Tier           string     `json:"tier"`
	Published      *time.Time `json:"published,omitempty"`
	Score          float64    `json:"score"`
	Relevance      float64    `json:"relevance"`
	Freshness      float64    `json:"freshness"`
	FreshnessLabel string     `json:"freshness_label"`
	Trust          float64    `json:"trust"`
	Badge          string     `json:"badge"`
	Sensationalism float64    `json:"sensationalism"`
	PogoCount      int        `json:"pogo_count,omitempty"`
}

// Response is the complete outcome of one search call. It is also the
// payload stored in the response cache.
type Response struct {
	Results           []Item   `json:"results"`
	Mode              string   `json:"mode"`
	Confidence        float64  `json:"confidence"`
	Triggers          []string `json:"triggers,omitempty"`
	TiersAttempted    []string `json:"tiers_attempted"`
	Exhausted         bool     `json:"exhausted"`
	CorrectedQuery    string   `json:"corrected_query,omitempty"`
	ElapsedMS         int64    `json:"elapsed_ms"`
	ClassifierEnabled bool     `json:"classifier_enabled"`
	SessionID         string   `json:"session_id"`
	Cached            bool     `json:"cached,omitempty"`
}

// Service runs the search pipeline. Concurrent identical calls
// collapse onto one execution via singleflight.
type Service struct {
	classifier Classifier
	discoverer Discoverer
	ranker     Ranker
	corrector  Corrector
	cache      ResponseCache
	usage      Usage
	group      singleflight.Group
}

// New creates the pipeline service. corrector, cache, and usage may be
// nil; the matching steps are skipped.
func New(
	classifier Classifier,
	discoverer Discoverer,
	ranker Ranker,
	corrector Corrector,
	cache ResponseCache,
	usage Usage,
) *Service {
	return &Service{
		classifier: classifier,
		discoverer: discoverer,
		ranker:     ranker,
		corrector:  corrector,
		cache:      cache,
		usage:      usage,
	}
}

// Search executes one query end to end. Every caller gets its own
// elapsed time and stats increment, even when collapsed onto a shared
// execution.
func (s *Service) Search(ctx context.Context, q query.Query) (Response, error) {
	start := time.Now()

	v, err, _ := s.group.Do(callKey(q), func() (any, error) {
		return s.search(ctx, q)
	})
	if err != nil {
		return Response{}, err
	}

	resp, ok := v.(Response)
	if !ok {
		return Response{}, fmt.Errorf("unexpected singleflight value %T", v)
	}
	resp.ElapsedMS = time.Since(start).Milliseconds()

	metrics.SearchesTotal.WithLabelValues(resp.Mode).Inc()
	metrics.SearchDuration.WithLabelValues(resp.Mode).Observe(time.Since(start).Seconds())
	if s.usage != nil {
		s.usage.SearchServed(resp.Mode == string(mode.Emergency))
	}

	return resp, nil
}

func (s *Service) search(ctx context.Context, q query.Query) (Response, error) {
	log := logger.FromContext(ctx)

	d := s.classifier.Classify(ctx, q)
	fp := fingerprint(q, d)

	if s.cache != nil && q.SessionID() != "" {
		if payload, ok := s.cache.Get(ctx, q.SessionID(), fp); ok {
			var resp Response
			if err := json.Unmarshal(payload, &resp); err == nil {
				if s.usage != nil {
					s.usage.CacheHit()
				}
				resp.Cached = true
				return resp, nil
			}
			log.Warn("Discarding undecodable cached response", zap.String("session_id", q.SessionID()))
		}
	}

	out, err := s.discoverer.Discover(ctx, q, d)
	if err != nil && len(out.Results) == 0 {
		return Response{}, fmt.Errorf("discover: %w", err)
	}
	// A cancelled walk still serves what it gathered, uncached.
	partial := err != nil

	corrected := ""
	if !partial && out.Exhausted && len(out.Results) < q.MaxResults() && s.corrector != nil {
		if fixed, changed := s.corrector.Correct(q.Normalized()); changed {
			out, q, d, corrected = s.retryCorrected(ctx, q, d, out, fixed)
		}
	}

	ranked := s.ranker.Rank(ctx, q, d, out.Results)
	resp := s.buildResponse(q, d, out, ranked, corrected)

	if s.cache != nil && q.SessionID() != "" && !partial {
		if payload, merr := json.Marshal(resp); merr == nil {
			s.cache.Put(ctx, q.SessionID(), fp, payload)
		}
	}

	return resp, nil
}

// retryCorrected re-runs discovery with the respelled query and adopts
// the retry only when it delivers strictly more results. A correction
// may upgrade the decision to emergency, never downgrade it.
func (s *Service) retryCorrected(
	ctx context.Context, q query.Query, d mode.Decision, out discovery.Outcome, fixed string,
) (discovery.Outcome, query.Query, mode.Decision, string) {
	cq, err := q.WithRaw(fixed)
	if err != nil {
		return out, q, d, ""
	}

	cd := s.classifier.Classify(ctx, cq)
	if !d.IsEmergency() && cd.IsEmergency() {
		d = cd
	}

	retry, err := s.discoverer.Discover(ctx, cq, d)
	if err != nil || len(retry.Results) <= len(out.Results) {
		return out, q, d, ""
	}

	logger.FromContext(ctx).Debug("Adopted spell-corrected query",
		zap.String("corrected", fixed),
		zap.Int("results", len(retry.Results)),
	)
	return retry, cq, d, fixed
}

func (s *Service) buildResponse(
	q query.Query, d mode.Decision, out discovery.Outcome, ranked []candidate.Candidate, corrected string,
) Response {
	// A tier batch can overshoot the target; trim after ranking so the
	// best of the whole walk survives.
	if len(ranked) > q.MaxResults() {
		ranked = ranked[:q.MaxResults()]
	}

	items := make([]Item, 0, len(ranked))
	for i := range ranked {
		items = append(items, toItem(&ranked[i]))
	}

	return Response{
		Results:           items,
		Mode:              string(d.Mode()),
		Confidence:        d.Confidence(),
		Triggers:          d.Reasons(),
		TiersAttempted:    out.TiersAttempted,
		Exhausted:         out.Exhausted,
		CorrectedQuery:    corrected,
		ClassifierEnabled: q.Enhanced() && s.classifier.ModelLoaded(),
		SessionID:         q.SessionID(),
	}
}

func toItem(c *candidate.Candidate) Item {
	raw := c.Raw()
	it := Item{
		Title:          raw.Title(),
		Link:           raw.Link(),
		Snippet:        raw.Snippet(),
		Source:         raw.SourceDomain(),
		Tier:           raw.Tier(),
		Score:          c.FinalScore(),
		Relevance:      c.Relevance(),
		Freshness:      c.Freshness(),
		FreshnessLabel: string(c.FreshnessLabel()),
		Trust:          c.Trust(),
		Badge:          string(c.Badge()),
		Sensationalism: c.Sensationalism(),
		PogoCount:      c.PogoCount(),
	}
	if pub, ok := raw.Published(); ok {
		t := pub
		it.Published = &t
	}
	return it
}

// fingerprint keys the response cache on everything that shapes a
// ranking for a fixed session.
func fingerprint(q query.Query, d mode.Decision) string {
	return digest(q.Normalized(), string(d.Mode()), strconv.Itoa(q.MaxResults()))
}

// callKey identifies a request for singleflight collapsing. Responses
// are session-scoped, so the session id is part of the identity.
func callKey(q query.Query) string {
	return digest(
		q.SessionID(),
		q.Normalized(),
		strconv.FormatBool(q.ForceEmergency()),
		strconv.FormatBool(q.Enhanced()),
		strconv.Itoa(q.MaxResults()),
	)
}

// digest hashes the parts with a separator so boundaries matter.
func digest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
