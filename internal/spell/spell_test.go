package spell

import "testing"

func testChecker() *Checker {
	return NewChecker([]string{
		"earthquake", "shelter", "flood", "warning", "hurricane",
		"evacuation", "wildfire", "tsunami", "emergency",
	})
}

func TestCorrect_SingleTypo(t *testing.T) {
	c := testChecker()

	got, changed := c.Correct("earthquak shelter")
	if !changed {
		t.Fatal("expected a correction")
	}
	if got != "earthquake shelter" {
		t.Errorf("corrected = %q", got)
	}
}

func TestCorrect_TwoEditsOnLongWord(t *testing.T) {
	c := testChecker()

	got, changed := c.Correct("huricane warning")
	if !changed {
		t.Fatal("expected a correction")
	}
	if got != "hurricane warning" {
		t.Errorf("corrected = %q", got)
	}
}

func TestCorrect_ShortWordsGetOneEditOnly(t *testing.T) {
	c := NewChecker([]string{"fire"})

	// Two edits away from "fire" but the word is short.
	if got, changed := c.Correct("fxrz"); changed {
		t.Errorf("short word corrected across two edits: %q", got)
	}
	if got, changed := c.Correct("firr"); !changed || got != "fire" {
		t.Errorf("one-edit short word not corrected: %q (changed=%v)", got, changed)
	}
}

func TestCorrect_KnownWordsUntouched(t *testing.T) {
	c := testChecker()

	got, changed := c.Correct("flood warning")
	if changed {
		t.Errorf("known words rewritten to %q", got)
	}
	if got != "flood warning" {
		t.Errorf("query mutated: %q", got)
	}
}

func TestCorrect_NoNeighbor(t *testing.T) {
	c := testChecker()

	if got, changed := c.Correct("xylophone lessons"); changed {
		t.Errorf("distant words corrected: %q", got)
	}
}

func TestCorrect_ShortTokensSkipped(t *testing.T) {
	c := testChecker()

	if got, changed := c.Correct("is it ok"); changed {
		t.Errorf("short tokens corrected: %q", got)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"earthquak", "earthquake", 1},
		{"flood", "flood", 0},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAdd_ExtendsVocabulary(t *testing.T) {
	c := NewChecker([]string{"flood"})
	before := c.Len()
	c.Add([]string{"landslide", "flood"})
	if c.Len() != before+1 {
		t.Errorf("Len = %d, want %d", c.Len(), before+1)
	}
	if got, changed := c.Correct("landslid"); !changed || got != "landslide" {
		t.Errorf("added word not used: %q", got)
	}
}
