package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

type fakeTier struct {
	name    string
	results []result.Result
	err     error
	block   bool
	calls   int
}

func (f *fakeTier) Name() string { return f.name }

func (f *fakeTier) Fetch(ctx context.Context, _ string, _ provider.Constraints) ([]result.Result, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.results, f.err
}

func mkResult(link, tier string, published *time.Time) result.Result {
	return result.New("Title for "+link, link, "Snippet.", "", published, tier)
}

func newService(tiers ...*fakeTier) *Service {
	wrapped := make([]Tier, len(tiers))
	for i, ft := range tiers {
		wrapped[i] = Tier{Adapter: ft, Timeout: 50 * time.Millisecond}
	}
	s := New(wrapped, 50*time.Millisecond, DefaultEmergencyWindow, 2)
	s.now = func() time.Time { return testNow }
	return s
}

func mustQuery(t *testing.T, raw string, maxResults int) query.Query {
	t.Helper()
	q, err := query.New(raw, false, false, "s-1", maxResults)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func TestDiscover_FirstTierSatisfies(t *testing.T) {
	first := &fakeTier{name: "local", results: []result.Result{
		mkResult("https://a.example.com/1", "local", nil),
		mkResult("https://a.example.com/2", "local", nil),
	}}
	second := &fakeTier{name: "web"}

	s := newService(first, second)
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 2), mode.StandardDecision())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if second.calls != 0 {
		t.Error("second tier consulted although the first satisfied the query")
	}
	if len(out.TiersAttempted) != 1 || out.TiersAttempted[0] != "local" {
		t.Errorf("tiers attempted = %v", out.TiersAttempted)
	}
	if out.Exhausted {
		t.Error("exhausted reported although the target was reached")
	}
}

func TestDiscover_FallsThroughOnError(t *testing.T) {
	broken := &fakeTier{name: "broken", err: errors.New("upstream 500")}
	healthy := &fakeTier{name: "healthy", results: []result.Result{
		mkResult("https://a.example.com/1", "healthy", nil),
	}}

	s := newService(broken, healthy)
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 1), mode.StandardDecision())
	if err != nil {
		t.Fatalf("a failing tier must not fail the walk: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("results = %d, want 1 from the healthy tier", len(out.Results))
	}
	if len(out.TiersAttempted) != 2 {
		t.Errorf("tiers attempted = %v, want both recorded", out.TiersAttempted)
	}
}

func TestDiscover_TimeoutFallsThrough(t *testing.T) {
	slow := &fakeTier{name: "slow", block: true}
	healthy := &fakeTier{name: "healthy", results: []result.Result{
		mkResult("https://a.example.com/1", "healthy", nil),
	}}

	s := newService(slow, healthy)
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 1), mode.StandardDecision())
	if err != nil {
		t.Fatalf("a timed-out tier must not fail the walk: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("results = %d, want the healthy tier to serve", len(out.Results))
	}
}

func TestDiscover_Exhaustion(t *testing.T) {
	thin := &fakeTier{name: "thin", results: []result.Result{
		mkResult("https://a.example.com/1", "thin", nil),
	}}
	empty := &fakeTier{name: "empty"}

	s := newService(thin, empty)
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 5), mode.StandardDecision())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !out.Exhausted {
		t.Error("walk past every tier without reaching the target must report exhausted")
	}
	if len(out.Results) != 1 {
		t.Errorf("results = %d", len(out.Results))
	}
	if len(out.TiersAttempted) != 2 {
		t.Errorf("tiers attempted = %v", out.TiersAttempted)
	}
}

func TestDiscover_DedupKeepsFirstSighting(t *testing.T) {
	pub := testNow.Add(-2 * time.Hour)
	first := &fakeTier{name: "first", results: []result.Result{
		result.New("", "https://a.example.com/story", "", "", nil, "first"),
	}}
	second := &fakeTier{name: "second", results: []result.Result{
		result.New("Full Title", "https://A.example.com/story/", "Backfilled snippet.", "", &pub, "second"),
		mkResult("https://b.example.com/other", "second", nil),
	}}

	s := newService(first, second)
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 2), mode.StandardDecision())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("results = %d, want duplicate collapsed", len(out.Results))
	}
	merged := out.Results[0]
	if merged.Tier() != "first" {
		t.Errorf("first sighting's tier lost: %s", merged.Tier())
	}
	if merged.Title() != "Full Title" || merged.Snippet() != "Backfilled snippet." {
		t.Errorf("missing fields not backfilled: %q %q", merged.Title(), merged.Snippet())
	}
	if _, ok := merged.Published(); !ok {
		t.Error("published date not backfilled")
	}
}

func TestDiscover_EmergencyDropsStale(t *testing.T) {
	stale := testNow.Add(-200 * time.Hour)
	fresh := testNow.Add(-2 * time.Hour)
	tier := &fakeTier{name: "news", results: []result.Result{
		mkResult("https://a.example.com/stale", "news", &stale),
		mkResult("https://a.example.com/fresh", "news", &fresh),
		mkResult("https://a.example.com/undated", "news", nil),
	}}

	s := newService(tier)
	d := mode.EmergencyDecision(0.9, mode.ForcedTrigger())
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 10), d)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("results = %d, want stale dropped and undated kept", len(out.Results))
	}
	for _, r := range out.Results {
		if r.Link() == "https://a.example.com/stale" {
			t.Error("stale result survived the emergency window")
		}
	}
}

func TestDiscover_EmergencyNeedsCorroboration(t *testing.T) {
	first := &fakeTier{name: "first", results: []result.Result{
		mkResult("https://a.example.com/1", "first", nil),
		mkResult("https://a.example.com/2", "first", nil),
	}}
	second := &fakeTier{name: "second", results: []result.Result{
		mkResult("https://b.example.com/1", "second", nil),
	}}

	s := newService(first, second)
	d := mode.EmergencyDecision(0.9, mode.ForcedTrigger())
	out, err := s.Discover(context.Background(), mustQuery(t, "earthquake", 2), d)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// Standard mode would stop after the first tier; emergency keeps
	// going until a second tier corroborates.
	if second.calls != 1 {
		t.Error("emergency walk stopped before the corroborating tier")
	}
	if len(out.Results) != 3 {
		t.Errorf("results = %d", len(out.Results))
	}
}

func TestDiscover_CancelledContextReturnsPartial(t *testing.T) {
	first := &fakeTier{name: "first", results: []result.Result{
		mkResult("https://a.example.com/1", "first", nil),
	}}
	blocker := &fakeTier{name: "blocker", block: true}
	after := &fakeTier{name: "after"}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	wrapped := []Tier{
		{Adapter: first, Timeout: time.Second},
		{Adapter: blocker, Timeout: time.Second},
		{Adapter: after, Timeout: time.Second},
	}
	s := New(wrapped, time.Second, DefaultEmergencyWindow, 2)

	out, err := s.Discover(ctx, mustQuery(t, "earthquake", 10), mode.StandardDecision())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("partial results = %d, want what was gathered before cancel", len(out.Results))
	}
	if after.calls != 0 {
		t.Error("tier after the cancellation point was consulted")
	}
}
