package scoring

import (
	"math"
	"strings"
)

// lexicalScores ranks documents against the query with TF-IDF cosine
// similarity, then max-normalizes the batch so the best match sits at
// 1.0. Scores are only comparable within one batch.
func lexicalScores(query string, docs []string) []float64 {
	queryTokens := tokenize(query)
	scores := make([]float64, len(docs))
	if len(queryTokens) == 0 || len(docs) == 0 {
		return scores
	}

	docTokens := make([][]string, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		docTokens[i] = tokenize(d)
		seen := make(map[string]bool)
		for _, tok := range docTokens[i] {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	n := float64(len(docs))
	idf := func(tok string) float64 {
		return math.Log((n+1)/(float64(df[tok])+1)) + 1
	}

	queryVec := weightedTF(queryTokens, idf)
	for i := range docs {
		scores[i] = cosine(queryVec, weightedTF(docTokens[i], idf))
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore > 0 {
		for i := range scores {
			scores[i] /= maxScore
		}
	}
	return scores
}

// weightedTF builds a term-frequency vector scaled by idf.
func weightedTF(tokens []string, idf func(string) float64) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	vec := make(map[string]float64, len(counts))
	total := float64(len(tokens))
	for tok, c := range counts {
		vec[tok] = (float64(c) / total) * idf(tok)
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for tok, va := range a {
		normA += va * va
		if vb, ok := b[tok]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if dot == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]'\"")
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}
