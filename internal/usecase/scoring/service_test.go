package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/domain/candidate"
	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/domain/trust"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

type fakeSemantic struct {
	scores []float64
	err    error
	calls  int
}

func (f *fakeSemantic) Similarity(_ context.Context, _ string, _ []string) ([]float64, error) {
	f.calls++
	return f.scores, f.err
}

type fakePogo struct {
	counts map[string]int
}

func (f *fakePogo) PogoCount(_, link string) int { return f.counts[link] }

func newTestService(semantic SemanticScorer, pogo PogoSource, blend float64) *Service {
	s := New(trust.DefaultTable(), nil, semantic, pogo, blend)
	s.now = func() time.Time { return testNow }
	return s
}

func testQuery(t *testing.T, raw string) query.Query {
	t.Helper()
	q, err := query.New(raw, false, false, "s-1", 0)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func resultAt(title, link, snippet string, published time.Time) result.Result {
	return result.New(title, link, snippet, "", &published, "test")
}

func TestRank_EmergencyPrefersFreshOfficial(t *testing.T) {
	s := newTestService(nil, nil, 0)
	q := testQuery(t, "earthquake shelter")
	d := mode.EmergencyDecision(0.8, mode.KeywordTrigger("natural disaster", "earthquake"))

	results := []result.Result{
		resultAt("Earthquake shelter rumors", "https://random.example.net/post", "Earthquake shelter gossip thread.", testNow.Add(-90*24*time.Hour)),
		resultAt("Earthquake shelter openings", "https://www.fema.gov/shelters", "Earthquake shelter sites now open.", testNow.Add(-2*time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if len(ranked) != 2 {
		t.Fatalf("got %d candidates", len(ranked))
	}
	if ranked[0].Raw().Link() != "https://www.fema.gov/shelters" {
		t.Errorf("fresh official source should rank first, got %s", ranked[0].Raw().Link())
	}
	if ranked[0].FreshnessLabel() != candidate.VeryRecent {
		t.Errorf("label = %s, want very-recent", ranked[0].FreshnessLabel())
	}
	if ranked[0].Trust() != 0.95 {
		t.Errorf("trust = %v, want the official tier", ranked[0].Trust())
	}
}

func TestRank_StandardWeightsIgnoreFreshness(t *testing.T) {
	s := newTestService(nil, nil, 0)
	q := testQuery(t, "earthquake safety")
	d := mode.StandardDecision()

	// Identical text, so relevance ties; only trust separates them.
	results := []result.Result{
		resultAt("Earthquake safety guide", "https://random.example.net/guide", "Earthquake safety steps.", testNow.Add(-1*time.Hour)),
		resultAt("Earthquake safety guide", "https://www.ready.gov/earthquakes", "Earthquake safety steps.", testNow.Add(-1000*time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if ranked[0].Raw().Link() != "https://www.ready.gov/earthquakes" {
		t.Errorf("higher trust should win in standard mode, got %s", ranked[0].Raw().Link())
	}
}

func TestRank_ScoresClamped(t *testing.T) {
	s := newTestService(nil, nil, 0)
	q := testQuery(t, "earthquake")
	d := mode.EmergencyDecision(0.9, mode.ForcedTrigger())

	results := []result.Result{
		resultAt("SHOCKING QUAKE FOOTAGE!!!", "https://junk.example.com/x", "Unbelievable total collapse, must see!!!", testNow.Add(-5000*time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if got := ranked[0].FinalScore(); got < 0 || got > 1 {
		t.Errorf("final score = %v, must stay within [0,1]", got)
	}
}

func TestRank_PogoPenaltyDemotes(t *testing.T) {
	pogo := &fakePogo{counts: map[string]int{"https://a.example.com/one": 3}}
	s := newTestService(nil, pogo, 0)
	q := testQuery(t, "earthquake shelter")
	d := mode.StandardDecision()

	results := []result.Result{
		resultAt("Earthquake shelter info", "https://a.example.com/one", "Earthquake shelter details.", testNow.Add(-time.Hour)),
		resultAt("Earthquake shelter info", "https://b.example.com/two", "Earthquake shelter details.", testNow.Add(-time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if ranked[0].Raw().Link() != "https://b.example.com/two" {
		t.Errorf("pogo-sticked link should be demoted, got %s first", ranked[0].Raw().Link())
	}
	if ranked[1].PogoCount() != 3 {
		t.Errorf("pogo count = %d, want 3", ranked[1].PogoCount())
	}
	// The undemoted score minus 1-1/(1+0.3*3), floored at zero.
	want := ranked[0].FinalScore() - (1 - 1/(1+0.3*3))
	if want < 0 {
		want = 0
	}
	if diff := ranked[1].FinalScore() - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("penalized score = %v, want %v", ranked[1].FinalScore(), want)
	}
}

func TestPogoPenalty_DiminishingReturns(t *testing.T) {
	if pogoPenalty(0) != 0 {
		t.Errorf("pogoPenalty(0) = %v, want 0", pogoPenalty(0))
	}
	prev, prevStep := 0.0, 1.0
	for count := 1; count <= 6; count++ {
		p := pogoPenalty(count)
		if p <= prev || p >= 1 {
			t.Fatalf("pogoPenalty(%d) = %v, must grow within (0,1)", count, p)
		}
		if step := p - prev; step >= prevStep {
			t.Errorf("pogoPenalty step at %d grew: %v >= %v", count, step, prevStep)
		} else {
			prevStep = step
		}
		prev = p
	}
}

func TestRank_StableOnTies(t *testing.T) {
	s := newTestService(nil, nil, 0)
	q := testQuery(t, "earthquake shelter")
	d := mode.StandardDecision()

	results := []result.Result{
		resultAt("Earthquake shelter info", "https://a.example.com/one", "Earthquake shelter details.", testNow.Add(-time.Hour)),
		resultAt("Earthquake shelter info", "https://b.example.com/two", "Earthquake shelter details.", testNow.Add(-time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if ranked[0].Raw().Link() != "https://a.example.com/one" {
		t.Errorf("ties must keep discovery order, got %s first", ranked[0].Raw().Link())
	}
}

func TestRank_SemanticBlend(t *testing.T) {
	sem := &fakeSemantic{scores: []float64{0, 1}}
	s := newTestService(sem, nil, 0.25)
	q := testQuery(t, "earthquake shelter")
	d := mode.StandardDecision()

	// Lexically identical, so the semantic signal is the tiebreaker.
	results := []result.Result{
		resultAt("Earthquake shelter info", "https://a.example.com/one", "Earthquake shelter details.", testNow.Add(-time.Hour)),
		resultAt("Earthquake shelter info", "https://b.example.com/two", "Earthquake shelter details.", testNow.Add(-time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if sem.calls != 1 {
		t.Fatalf("semantic scorer called %d times, want 1", sem.calls)
	}
	if ranked[0].Raw().Link() != "https://b.example.com/two" {
		t.Errorf("semantic signal should break the tie, got %s first", ranked[0].Raw().Link())
	}
}

func TestRank_SemanticFailureFallsBack(t *testing.T) {
	sem := &fakeSemantic{err: errors.New("oracle down")}
	s := newTestService(sem, nil, 0.25)
	q := testQuery(t, "earthquake shelter")
	d := mode.StandardDecision()

	results := []result.Result{
		resultAt("Earthquake shelter info", "https://a.example.com/one", "Earthquake shelter details.", testNow.Add(-time.Hour)),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if len(ranked) != 1 {
		t.Fatalf("expected lexical fallback to still rank, got %d", len(ranked))
	}
	if ranked[0].FinalScore() <= 0 {
		t.Errorf("fallback score = %v, want positive", ranked[0].FinalScore())
	}
}

func TestRank_SnippetDateBackfill(t *testing.T) {
	s := newTestService(nil, nil, 0)
	q := testQuery(t, "earthquake")
	d := mode.EmergencyDecision(0.9, mode.ForcedTrigger())

	results := []result.Result{
		result.New("Quake latest", "https://a.example.com/live", "2 hours ago — aftershocks continue downtown.", "", nil, "test"),
	}

	ranked := s.Rank(context.Background(), q, d, results)
	if ranked[0].FreshnessLabel() != candidate.VeryRecent {
		t.Errorf("label = %s, want very-recent from the snippet date", ranked[0].FreshnessLabel())
	}
	if ranked[0].Freshness() != 0.9 {
		t.Errorf("freshness = %v, want the 6-hour emergency bucket", ranked[0].Freshness())
	}
}

func TestRank_EmptyBatch(t *testing.T) {
	s := newTestService(nil, nil, 0)
	q := testQuery(t, "earthquake")

	if got := s.Rank(context.Background(), q, mode.StandardDecision(), nil); got != nil {
		t.Errorf("expected nil for empty batch, got %v", got)
	}
}
