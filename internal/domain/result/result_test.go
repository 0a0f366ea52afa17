package result

import (
	"testing"
	"time"
)

func TestNew_DerivesDomain(t *testing.T) {
	r := New("Shelter map", "https://www.fema.gov/shelters", "Open shelters", "", nil, "local")
	if r.SourceDomain() != "fema.gov" {
		t.Errorf("SourceDomain() = %q, want fema.gov", r.SourceDomain())
	}
	if r.Tier() != "local" {
		t.Errorf("Tier() = %q", r.Tier())
	}
	if _, ok := r.Published(); ok {
		t.Error("Published() ok = true for nil timestamp")
	}
}

func TestNew_KeepsExplicitDomain(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := New("t", "https://example.com/a", "s", "news.example.com", &ts, "gnews")
	if r.SourceDomain() != "news.example.com" {
		t.Errorf("SourceDomain() = %q", r.SourceDomain())
	}
	got, ok := r.Published()
	if !ok || !got.Equal(ts) {
		t.Errorf("Published() = %v, %v", got, ok)
	}
}

func TestAccessors_CallableOnTemporary(t *testing.T) {
	// Accessors must work on a Result that was never bound to a
	// variable, as when chained off another type's getter.
	if got := New("t", "https://example.com/a", "s", "", nil, "local").Link(); got != "https://example.com/a" {
		t.Errorf("Link() = %q", got)
	}
	if got := New("t", "https://example.com/a", "s", "", nil, "local").Canonical(); got != "https://example.com/a" {
		t.Errorf("Canonical() = %q", got)
	}
}

func TestCanonicalizeLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"query and fragment dropped", "https://Example.com/path?utm=1#top", "https://example.com/path"},
		{"trailing slash stripped", "https://example.com/path/", "https://example.com/path"},
		{"default https port stripped", "https://example.com:443/path", "https://example.com/path"},
		{"default http port stripped", "http://example.com:80/a", "http://example.com/a"},
		{"custom port kept", "https://example.com:8443/a", "https://example.com:8443/a"},
		{"host lowercased", "HTTPS://EXAMPLE.COM/A", "https://example.com/A"},
		{"unparseable falls back", "not a url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalizeLink(tt.in); got != tt.want {
				t.Errorf("CanonicalizeLink(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonical_EquivalentLinksCollide(t *testing.T) {
	a := New("a", "https://example.com/news/", "", "", nil, "t1")
	b := New("b", "https://example.com/news?ref=rss", "", "", nil, "t2")
	if a.Canonical() != b.Canonical() {
		t.Errorf("Canonical() mismatch: %q vs %q", a.Canonical(), b.Canonical())
	}
}

func TestFillMissing(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	kept := New("", "https://example.com/a", "", "", nil, "t1")
	dup := New("Title from dup", "https://example.com/a?x=1", "Snippet from dup", "", &ts, "t2")

	kept.FillMissing(dup)
	if kept.Title() != "Title from dup" {
		t.Errorf("Title() = %q", kept.Title())
	}
	if kept.Snippet() != "Snippet from dup" {
		t.Errorf("Snippet() = %q", kept.Snippet())
	}
	if got, ok := kept.Published(); !ok || !got.Equal(ts) {
		t.Errorf("Published() = %v, %v", got, ok)
	}
	if kept.Tier() != "t1" {
		t.Errorf("Tier() = %q, first-seen tier must win", kept.Tier())
	}
}

func TestFillMissing_KeepsExisting(t *testing.T) {
	kept := New("Original", "https://example.com/a", "Original snippet", "", nil, "t1")
	dup := New("Other", "https://example.com/a", "Other snippet", "", nil, "t2")

	kept.FillMissing(dup)
	if kept.Title() != "Original" || kept.Snippet() != "Original snippet" {
		t.Errorf("existing text overwritten: %q / %q", kept.Title(), kept.Snippet())
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.who.int/page", "who.int"},
		{"https://reddit.com:8080/r/news", "reddit.com"},
		{"garbage", ""},
	}
	for _, tt := range tests {
		if got := DomainOf(tt.in); got != tt.want {
			t.Errorf("DomainOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
