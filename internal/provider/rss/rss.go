// Package rss serves results from a fixed set of news feeds. Feeds are
// not queryable, so items are pulled and filtered locally by keyword.
package rss

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

// Engine pulls configured feeds and matches items against the query.
type Engine struct {
	name   string
	feeds  []string
	client *http.Client
}

var _ provider.Adapter = (*Engine)(nil)

// New builds the tier over the given feed URLs.
func New(name string, feeds []string, client *http.Client) *Engine {
	if client == nil {
		client = http.DefaultClient
	}
	return &Engine{name: name, feeds: feeds, client: client}
}

// Name returns the tier identifier.
func (e *Engine) Name() string { return e.name }

// Fetch walks the feeds in order and keeps items whose title or
// description contains any query keyword. A feed that fails to load is
// skipped so one dead feed does not blank the tier.
func (e *Engine) Fetch(ctx context.Context, query string, c provider.Constraints) ([]result.Result, error) {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return nil, nil
	}

	limit := c.MaxResults
	if limit <= 0 {
		limit = provider.DefaultFetchLimit
	}

	parser := gofeed.NewParser()
	out := make([]result.Result, 0, limit)
	var lastErr error

	for _, feedURL := range e.feeds {
		if len(out) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		body, err := provider.GetBody(ctx, e.client, feedURL, "application/rss+xml, application/atom+xml, application/xml;q=0.9")
		if err != nil {
			lastErr = err
			continue
		}
		feed, err := parser.Parse(body)
		body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		for _, it := range feed.Items {
			if len(out) >= limit {
				break
			}
			text := strings.ToLower(it.Title + " " + it.Description)
			if !matchesAnyKeyword(text, keywords) {
				continue
			}

			var published *time.Time
			if it.PublishedParsed != nil {
				published = it.PublishedParsed
			} else if it.UpdatedParsed != nil {
				published = it.UpdatedParsed
			}
			if published != nil && !c.FreshnessCutoff.IsZero() && published.Before(c.FreshnessCutoff) {
				continue
			}

			out = append(out, result.New(
				strings.TrimSpace(it.Title),
				strings.TrimSpace(it.Link),
				strings.TrimSpace(it.Description),
				"",
				published,
				e.name,
			))
		}
	}

	// Only surface an error when every feed failed and nothing came
	// through.
	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func matchesAnyKeyword(text string, keywords []string) bool {
	for _, k := range keywords {
		if len(k) < 3 {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
