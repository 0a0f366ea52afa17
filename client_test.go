package satyadrishti

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_OfflineDefaults(t *testing.T) {
	c := newTestClient(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSearch_EmergencyQuery(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Search(context.Background(), "earthquake shelter near me", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Mode != "emergency" {
		t.Errorf("mode = %q, want emergency", resp.Mode)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results from the local corpus")
	}
	if resp.SessionID == "" {
		t.Error("expected a minted session id")
	}
	if len(resp.TiersAttempted) == 0 || resp.TiersAttempted[0] != "local" {
		t.Errorf("tiers attempted = %v, want local first", resp.TiersAttempted)
	}
	for _, r := range resp.Results {
		if r.Link == "" {
			t.Error("result without link")
		}
		if r.Score < 0 {
			t.Errorf("score = %v, want >= 0 after clamping", r.Score)
		}
	}
}

func TestSearch_StandardQuery(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Search(context.Background(), "banana bread recipe", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Mode != "standard" {
		t.Errorf("mode = %q, want standard", resp.Mode)
	}
}

func TestSearch_ForceEmergency(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Search(context.Background(), "supply kit checklist", &SearchOptions{
		ForceEmergency: true,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Mode != "emergency" {
		t.Errorf("mode = %q, want emergency when forced", resp.Mode)
	}
}

func TestSearch_SessionIDForwarded(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Search(context.Background(), "flood warnings", &SearchOptions{
		SessionID: "sess-42",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.SessionID != "sess-42" {
		t.Errorf("session id = %q, want sess-42", resp.SessionID)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Search(context.Background(), "   ", nil)
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestFeedback_PogoLoop(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.Search(ctx, "earthquake shelter near me", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	session := resp.SessionID
	link := resp.Results[0].Link

	base := time.Now()
	click := FeedbackEvent{
		Action:    FeedbackClick,
		URL:       link,
		Query:     "earthquake shelter near me",
		SessionID: session,
		At:        base,
	}

	out, err := c.Feedback(ctx, click)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if out.PogoDetected {
		t.Error("click alone must not register as pogo")
	}

	ret := click
	ret.Action = FeedbackReturn
	ret.At = base.Add(2 * time.Second)
	out, err = c.Feedback(ctx, ret)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if !out.PogoDetected {
		t.Fatal("quick return after click must register as pogo")
	}
	if out.PogoCount != 1 {
		t.Errorf("pogo count = %d, want 1", out.PogoCount)
	}
	if out.Demoted {
		t.Error("single pogo must not demote")
	}

	// Two more click/return pairs cross the demotion threshold.
	for i := 0; i < 2; i++ {
		click.At = base.Add(time.Duration(10*(i+1)) * time.Minute)
		if _, err := c.Feedback(ctx, click); err != nil {
			t.Fatalf("click %d: %v", i+2, err)
		}
		ret.At = click.At.Add(2 * time.Second)
		out, err = c.Feedback(ctx, ret)
		if err != nil {
			t.Fatalf("return %d: %v", i+2, err)
		}
	}
	if out.PogoCount != 3 {
		t.Errorf("pogo count = %d, want 3", out.PogoCount)
	}
	if !out.Demoted {
		t.Error("third pogo must demote")
	}
}

func TestFeedback_SlowReturnIsNotPogo(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	base := time.Now()
	click := FeedbackEvent{
		Action:    FeedbackClick,
		URL:       "https://www.ready.gov/earthquakes",
		Query:     "earthquake safety",
		SessionID: "sess-slow",
		At:        base,
	}
	if _, err := c.Feedback(ctx, click); err != nil {
		t.Fatalf("click: %v", err)
	}

	ret := click
	ret.Action = FeedbackReturn
	ret.At = base.Add(time.Minute)
	out, err := c.Feedback(ctx, ret)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if out.PogoDetected {
		t.Error("return after a minute must not register as pogo")
	}
}

func TestFeedback_Validation(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	cases := []struct {
		name string
		ev   FeedbackEvent
		want error
	}{
		{
			name: "bad action",
			ev:   FeedbackEvent{Action: "hover", URL: "https://a.example/x", SessionID: "s"},
			want: ErrInvalidAction,
		},
		{
			name: "missing url",
			ev:   FeedbackEvent{Action: FeedbackClick, SessionID: "s"},
			want: ErrInvalidURL,
		},
		{
			name: "missing session",
			ev:   FeedbackEvent{Action: FeedbackClick, URL: "https://a.example/x"},
			want: ErrMissingSession,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Feedback(ctx, tc.ev)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestStats_CountsSearches(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Search(ctx, "flood evacuation route", nil); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := c.Search(ctx, "banana bread recipe", nil); err != nil {
		t.Fatalf("search: %v", err)
	}

	st := c.Stats(ctx)
	if st.SearchesToday != 2 {
		t.Errorf("searches today = %d, want 2", st.SearchesToday)
	}
	if st.EmergenciesToday != 1 {
		t.Errorf("emergencies today = %d, want 1", st.EmergenciesToday)
	}
	if !st.ClassifierLoaded {
		t.Error("classifier must load from built-in training data")
	}
}

func TestHealth_Offline(t *testing.T) {
	c := newTestClient(t)

	r := c.Health(context.Background())
	if r.Status != HealthOK {
		t.Errorf("status = %q, want %q", r.Status, HealthOK)
	}
	if r.Checks["database"] != "ok" {
		t.Errorf("database check = %q, want ok", r.Checks["database"])
	}
}

func TestWithCorpus_ReplacesLocalTier(t *testing.T) {
	c := newTestClient(t, WithCorpus([]Document{
		{
			Title:   "Volunteer Fire Brigade Contacts",
			Link:    "https://brigade.example/contacts",
			Snippet: "Contact list for the volunteer fire brigade and dispatch.",
		},
	}))

	resp, err := c.Search(context.Background(), "fire brigade contacts", nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].Link != "https://brigade.example/contacts" {
		t.Errorf("link = %q, want the replacement corpus entry", resp.Results[0].Link)
	}
}
