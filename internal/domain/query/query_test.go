package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/HeckerOO1/Search-engine/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("Earthquake  Shelter ", false, false, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Raw() != "Earthquake  Shelter" {
		t.Errorf("Raw() = %q", q.Raw())
	}
	if q.Normalized() != "earthquake shelter" {
		t.Errorf("Normalized() = %q", q.Normalized())
	}
	if q.MaxResults() != DefaultMaxResults {
		t.Errorf("MaxResults() = %d, want %d", q.MaxResults(), DefaultMaxResults)
	}
	if q.ForceEmergency() || q.Enhanced() {
		t.Error("flags should default to false")
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, err := New(raw, false, false, "", 0); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("New(%q) error = %v, want ErrEmptyQuery", raw, err)
		}
	}
}

func TestNew_TooLong(t *testing.T) {
	raw := strings.Repeat("a", MaxQueryLength+1)
	if _, err := New(raw, false, false, "", 0); !errors.Is(err, domain.ErrQueryTooLong) {
		t.Errorf("error = %v, want ErrQueryTooLong", err)
	}
}

func TestNew_MaxResultsClamped(t *testing.T) {
	q, err := New("flood", false, false, "s1", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.MaxResults() != MaxMaxResults {
		t.Errorf("MaxResults() = %d, want %d", q.MaxResults(), MaxMaxResults)
	}
	if q.SessionID() != "s1" {
		t.Errorf("SessionID() = %q", q.SessionID())
	}
}

func TestTokens(t *testing.T) {
	q, err := New("Flood Warning NOW", false, false, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := q.Tokens()
	want := []string{"flood", "warning", "now"}
	if len(got) != len(want) {
		t.Fatalf("Tokens() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokens()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWithRaw_KeepsFlags(t *testing.T) {
	q, err := New("earthquak", true, true, "s9", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	corrected, err := q.WithRaw("earthquake")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corrected.Normalized() != "earthquake" {
		t.Errorf("Normalized() = %q", corrected.Normalized())
	}
	if !corrected.ForceEmergency() || !corrected.Enhanced() {
		t.Error("flags should survive WithRaw")
	}
	if corrected.SessionID() != "s9" || corrected.MaxResults() != 5 {
		t.Errorf("session/limit lost: %q %d", corrected.SessionID(), corrected.MaxResults())
	}
}
