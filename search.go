package satyadrishti

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	searchuc "github.com/HeckerOO1/Search-engine/internal/usecase/search"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// ForceEmergency pins emergency mode regardless of the
	// classifier verdict.
	ForceEmergency bool
	// Enhanced requests query expansion before discovery.
	Enhanced bool
	// SessionID ties the search to a feedback session. Empty mints
	// a new one; it comes back in the response.
	SessionID string
	// MaxResults caps the result list. Zero selects the default.
	MaxResults int
}

// SearchResult is one scored entry.
type SearchResult struct {
	Title          string
	Link           string
	Snippet        string
	Source         string
	Tier           string
	Published      *time.Time
	Score          float64
	Relevance      float64
	Freshness      float64
	FreshnessLabel string
	Trust          float64
	Badge          string
	Sensationalism float64
	PogoCount      int
}

// SearchResponse is the full search outcome.
type SearchResponse struct {
	Results           []SearchResult
	Mode              string
	Confidence        float64
	Triggers          []string
	TiersAttempted    []string
	Exhausted         bool
	CorrectedQuery    string
	Elapsed           time.Duration
	ClassifierEnabled bool
	SessionID         string
	Cached            bool
}

// Search classifies the query, walks the discovery tiers, and returns
// the mode-weighted ranking.
func (c *Client) Search(
	ctx context.Context, text string, opts *SearchOptions,
) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if opts == nil {
		opts = &SearchOptions{}
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	q, err := query.New(text, opts.ForceEmergency, opts.Enhanced, sessionID, opts.MaxResults)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	out, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	return fromSearchResponse(out), nil
}

func fromSearchResponse(r searchuc.Response) SearchResponse {
	results := make([]SearchResult, 0, len(r.Results))
	for _, it := range r.Results {
		results = append(results, SearchResult{
			Title:          it.Title,
			Link:           it.Link,
			Snippet:        it.Snippet,
			Source:         it.Source,
			Tier:           it.Tier,
			Published:      it.Published,
			Score:          it.Score,
			Relevance:      it.Relevance,
			Freshness:      it.Freshness,
			FreshnessLabel: it.FreshnessLabel,
			Trust:          it.Trust,
			Badge:          it.Badge,
			Sensationalism: it.Sensationalism,
			PogoCount:      it.PogoCount,
		})
	}
	return SearchResponse{
		Results:           results,
		Mode:              r.Mode,
		Confidence:        r.Confidence,
		Triggers:          r.Triggers,
		TiersAttempted:    r.TiersAttempted,
		Exhausted:         r.Exhausted,
		CorrectedQuery:    r.CorrectedQuery,
		Elapsed:           time.Duration(r.ElapsedMS) * time.Millisecond,
		ClassifierEnabled: r.ClassifierEnabled,
		SessionID:         r.SessionID,
		Cached:            r.Cached,
	}
}
