// Package spell corrects misspelled query terms against a known
// vocabulary with edit distance. Short words tolerate one edit, longer
// words two.
package spell

import (
	"sort"
	"strings"
)

// shortWordLen splits the per-word edit budget: words this long or
// shorter allow one edit, longer words allow two.
const shortWordLen = 4

// Checker corrects words against its vocabulary.
type Checker struct {
	vocab map[string]bool
	words []string
}

// NewChecker builds a checker. Vocabulary entries are lowercased and
// deduplicated.
func NewChecker(vocabulary []string) *Checker {
	vocab := make(map[string]bool, len(vocabulary))
	for _, w := range vocabulary {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			vocab[w] = true
		}
	}
	words := make([]string, 0, len(vocab))
	for w := range vocab {
		words = append(words, w)
	}
	sort.Strings(words)
	return &Checker{vocab: vocab, words: words}
}

// Add extends the vocabulary.
func (c *Checker) Add(vocabulary []string) {
	for _, w := range vocabulary {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || c.vocab[w] {
			continue
		}
		c.vocab[w] = true
		c.words = append(c.words, w)
	}
	sort.Strings(c.words)
}

// Len reports the vocabulary size.
func (c *Checker) Len() int { return len(c.words) }

// Correct rewrites each unknown word to its nearest vocabulary entry
// within the edit budget. It returns the corrected query and whether
// anything changed. Known words and words with no close neighbor pass
// through untouched.
func (c *Checker) Correct(query string) (string, bool) {
	fields := strings.Fields(query)
	changed := false
	for i, f := range fields {
		lower := strings.ToLower(f)
		if len(lower) < 3 || c.vocab[lower] {
			continue
		}
		if best, ok := c.nearest(lower); ok {
			fields[i] = best
			changed = true
		}
	}
	if !changed {
		return query, false
	}
	return strings.Join(fields, " "), true
}

// nearest finds the closest vocabulary word within the edit budget.
// Ties go to the alphabetically first candidate.
func (c *Checker) nearest(word string) (string, bool) {
	budget := 1
	if len(word) > shortWordLen {
		budget = 2
	}
	best := ""
	bestDist := budget + 1
	for _, v := range c.words {
		// Length difference is a lower bound on edit distance.
		if diff := len(v) - len(word); diff > budget || -diff > budget {
			continue
		}
		if d := levenshtein(word, v); d < bestDist {
			best = v
			bestDist = d
			if d == 0 {
				break
			}
		}
	}
	if bestDist > budget {
		return "", false
	}
	return best, true
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
