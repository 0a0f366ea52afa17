// Package gnews fetches results from the Google News search RSS feed.
// The feed carries publication dates and a <source> element naming the
// real publisher, which downstream trust scoring needs.
package gnews

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

const (
	defaultBaseURL = "https://news.google.com/rss/search"
	acceptRSS      = "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8"
)

type rssFeed struct {
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	PubDate     string    `xml:"pubDate"`
	Description string    `xml:"description"`
	Source      rssSource `xml:"source"`
}

type rssSource struct {
	URL  string `xml:"url,attr"`
	Text string `xml:",chardata"`
}

var reTag = regexp.MustCompile(`<[^>]*>`)

// Engine queries the Google News search RSS endpoint.
type Engine struct {
	name    string
	baseURL string
	client  *http.Client
}

var _ provider.Adapter = (*Engine)(nil)

// New builds the tier. Empty baseURL selects the public endpoint.
func New(name, baseURL string, client *http.Client) *Engine {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Engine{name: name, baseURL: baseURL, client: client}
}

// Name returns the tier identifier.
func (e *Engine) Name() string { return e.name }

// Fetch runs the query against the feed and maps items to results.
func (e *Engine) Fetch(ctx context.Context, query string, c provider.Constraints) ([]result.Result, error) {
	u := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", e.baseURL, url.QueryEscape(query))
	body, err := provider.GetBody(ctx, e.client, u, acceptRSS)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	var feed rssFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	limit := c.MaxResults
	if limit <= 0 {
		limit = provider.DefaultFetchLimit
	}

	out := make([]result.Result, 0, limit)
	for _, it := range feed.Channel.Items {
		if len(out) >= limit {
			break
		}
		link := strings.TrimSpace(it.Link)
		title := cleanTitle(it.Title, it.Source.Text)
		if link == "" || title == "" {
			continue
		}

		var published *time.Time
		if t, ok := parseRSSDate(it.PubDate); ok {
			if !c.FreshnessCutoff.IsZero() && t.Before(c.FreshnessCutoff) {
				continue
			}
			published = &t
		}

		out = append(out, result.New(
			title,
			link,
			cleanDescription(it.Description),
			result.DomainOf(it.Source.URL),
			published,
			e.name,
		))
	}
	return out, nil
}

// cleanTitle strips the " - Publisher" suffix Google appends to item
// titles when it duplicates the <source> name.
func cleanTitle(title, sourceName string) string {
	title = strings.TrimSpace(html.UnescapeString(title))
	if i := strings.LastIndex(title, " - "); i > 0 {
		suffix := title[i+len(" - "):]
		if sourceName == "" || strings.EqualFold(suffix, strings.TrimSpace(sourceName)) {
			title = title[:i]
		}
	}
	return strings.TrimSpace(title)
}

// cleanDescription flattens the HTML description to plain text.
func cleanDescription(desc string) string {
	desc = html.UnescapeString(desc)
	desc = reTag.ReplaceAllString(desc, " ")
	return strings.Join(strings.Fields(desc), " ")
}

// parseRSSDate handles RFC1123Z and the common variants feed
// publishers actually emit.
func parseRSSDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
