package search

import (
	"context"

	"github.com/HeckerOO1/Search-engine/internal/domain/candidate"
	"github.com/HeckerOO1/Search-engine/internal/domain/mode"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/usecase/discovery"
)

// Classifier decides the search mode for a query.
type Classifier interface {
	Classify(ctx context.Context, q query.Query) mode.Decision
	ModelLoaded() bool
}

// Discoverer walks the provider tiers and gathers raw results.
type Discoverer interface {
	Discover(ctx context.Context, q query.Query, d mode.Decision) (discovery.Outcome, error)
}

// Ranker scores a discovered batch and orders it best first.
type Ranker interface {
	Rank(ctx context.Context, q query.Query, d mode.Decision, results []result.Result) []candidate.Candidate
}

// Corrector proposes a respelled query. The bool is false when the
// text came back unchanged.
type Corrector interface {
	Correct(query string) (string, bool)
}

// ResponseCache stores serialized responses scoped by session.
type ResponseCache interface {
	Get(ctx context.Context, sessionID, fingerprint string) ([]byte, bool)
	Put(ctx context.Context, sessionID, fingerprint string, payload []byte)
}

// Usage records daily stats counters.
type Usage interface {
	SearchServed(emergency bool)
	CacheHit()
}
