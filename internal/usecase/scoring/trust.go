package scoring

import (
	"regexp"
	"strings"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/domain/trust"
)

const (
	// suspicionThreshold fires on one marker in the title or two in
	// the snippet.
	suspicionThreshold = 0.15
	misinfoScale       = 0.5
	misinfoFloor       = 0.1
)

var (
	reExclamRun = regexp.MustCompile(`!{2,}`)

	clickbaitPhrases = []string{
		"you won't believe",
		"doctors hate",
		"they don't want you to know",
		"the truth about",
		"what happens next",
		"number one trick",
		"miracle cure",
		"secret they",
		"will shock you",
		"goes viral",
	}
)

// trustScore looks up the source tier and discounts it when the text
// carries misinformation markers. The floor keeps even the worst
// sources above zero so weighting stays meaningful.
func trustScore(table trust.Table, r result.Result) float64 {
	base := table.Lookup(r.SourceDomain()).Score()
	if suspicion(r.Title(), r.Snippet()) >= suspicionThreshold {
		base *= misinfoScale
		if base < misinfoFloor {
			base = misinfoFloor
		}
	}
	return base
}

// suspicion weighs misinformation markers, title at 60% and snippet
// at 40%. Each text contributes the fraction of markers it fires.
func suspicion(title, snippet string) float64 {
	return 0.6*markerFraction(title) + 0.4*markerFraction(snippet)
}

func markerFraction(text string) float64 {
	if text == "" {
		return 0
	}
	const total = 4
	fired := 0
	if capsWordCount(text) >= 2 {
		fired++
	}
	if reExclamRun.MatchString(text) {
		fired++
	}
	lower := strings.ToLower(text)
	for _, p := range clickbaitPhrases {
		if strings.Contains(lower, p) {
			fired++
			break
		}
	}
	if stuffingRatio(text) > 0.2 {
		fired++
	}
	return float64(fired) / total
}

// capsWordCount counts fully upper-case words of 3+ letters.
func capsWordCount(text string) int {
	n := 0
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,;:!?()[]'\"")
		if len(w) < 3 {
			continue
		}
		letters := 0
		upper := 0
		for _, r := range w {
			if r >= 'a' && r <= 'z' {
				letters++
			} else if r >= 'A' && r <= 'Z' {
				letters++
				upper++
			}
		}
		if letters >= 3 && upper == letters {
			n++
		}
	}
	return n
}

// stuffingRatio reports the share of the most repeated token. Copy
// that hammers one term past 20% reads as keyword stuffing.
func stuffingRatio(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) < 5 {
		return 0
	}
	counts := make(map[string]int)
	maxCount := 0
	for _, tok := range tokens {
		counts[tok]++
		if counts[tok] > maxCount {
			maxCount = counts[tok]
		}
	}
	return float64(maxCount) / float64(len(tokens))
}
