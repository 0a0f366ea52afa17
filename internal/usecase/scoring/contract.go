package scoring

import "context"

// SemanticScorer rates query/document similarity with embeddings.
// Optional: the service degrades to lexical-only relevance when it is
// absent or failing.
type SemanticScorer interface {
	Similarity(ctx context.Context, query string, texts []string) ([]float64, error)
}

// PogoSource reports how often a session has pogo-sticked a link.
type PogoSource interface {
	PogoCount(sessionID, link string) int
}
