package local

import (
	"context"
	"testing"

	"github.com/HeckerOO1/Search-engine/internal/provider"
)

func TestFetch_RanksByOverlap(t *testing.T) {
	idx := NewIndex("local", []Document{
		{Title: "Gardening tips", Link: "https://a.example/1", Snippet: "flowers and soil"},
		{Title: "Earthquake shelter list", Link: "https://a.example/2", Snippet: "open shelter sites after an earthquake"},
		{Title: "Earthquake basics", Link: "https://a.example/3", Snippet: "what causes an earthquake"},
	})

	got, err := idx.Fetch(context.Background(), "earthquake shelter", provider.Constraints{MaxResults: 10})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Link() != "https://a.example/2" {
		t.Errorf("expected the two-term match first, got %s", got[0].Link())
	}
	if got[0].Tier() != "local" {
		t.Errorf("tier = %q, want local", got[0].Tier())
	}
}

func TestFetch_RespectsMaxResults(t *testing.T) {
	idx := NewIndex("local", nil)

	got, err := idx.Fetch(context.Background(), "emergency", provider.Constraints{MaxResults: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) > 2 {
		t.Errorf("expected at most 2 results, got %d", len(got))
	}
}

func TestFetch_NoMatch(t *testing.T) {
	idx := NewIndex("local", nil)

	got, err := idx.Fetch(context.Background(), "zzyzx qwerty", provider.Constraints{MaxResults: 10})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	idx := NewIndex("local", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := idx.Fetch(ctx, "earthquake", provider.Constraints{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNewIndex_DefaultCorpus(t *testing.T) {
	idx := NewIndex("local", nil)
	if len(idx.docs) == 0 {
		t.Fatal("expected compiled-in corpus")
	}
}

func TestVocabulary(t *testing.T) {
	idx := NewIndex("local", []Document{
		{Title: "Earthquake safety", Snippet: "drop, cover, and hold on"},
	})

	vocab := idx.Vocabulary()
	want := map[string]bool{"earthquake": true, "safety": true, "drop": true, "cover": true, "hold": true}
	for w := range want {
		found := false
		for _, v := range vocab {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("vocabulary missing %q", w)
		}
	}
	for _, v := range vocab {
		if v == "on" {
			t.Error("words shorter than three characters should be excluded")
		}
	}
}
