package openai

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// embedder is the consumer interface for the oracle client (ISP).
// Both the raw Embedder and its caching decorator satisfy it.
type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Scorer rates query/document similarity with oracle embeddings.
// Cosine output is shifted from [-1,1] into [0,1].
type Scorer struct {
	embedder embedder
	logger   *zap.Logger
}

// NewScorer creates a semantic scorer over an embedding client.
func NewScorer(e embedder, logger *zap.Logger) *Scorer {
	return &Scorer{
		embedder: e,
		logger:   logger,
	}
}

// Similarity embeds the query and every document and returns one
// score per document, in input order.
func (s *Scorer) Similarity(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	qv, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scores := make([]float64, len(texts))
	for i, text := range texts {
		tv, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed document %d: %w", i, err)
		}
		if len(tv) != len(qv) {
			return nil, fmt.Errorf("embedding dimension mismatch: query %d, document %d", len(qv), len(tv))
		}
		scores[i] = normalizedCosine(qv, tv)
	}

	return scores, nil
}

// normalizedCosine maps cosine similarity into [0,1]. A zero vector
// scores 0.
func normalizedCosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		na += av * av
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return (cos + 1) / 2
}
