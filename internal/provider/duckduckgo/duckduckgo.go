// Package duckduckgo fetches results from the DuckDuckGo HTML
// endpoint, which serves plain markup without JavaScript.
package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

const defaultBaseURL = "https://html.duckduckgo.com/html/"

// Engine queries the DuckDuckGo HTML endpoint.
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

// Fetch runs the query and parses the result list out of the page.
func (e *Engine) Fetch(ctx context.Context, query string, c provider.Constraints) ([]result.Result, error) {
	u := fmt.Sprintf("%s?q=%s", e.baseURL, url.QueryEscape(query))
	body, err := provider.GetBody(ctx, e.client, u, "text/html")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	limit := c.MaxResults
	if limit <= 0 {
		limit = provider.DefaultFetchLimit
	}

	var out []result.Result
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		anchor := s.Find("a.result__a").First()
		title := strings.TrimSpace(anchor.Text())
		href, _ := anchor.Attr("href")
		link := decodeRedirect(href)
		if title == "" || link == "" {
			return true
		}
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())
		out = append(out, result.New(title, link, snippet, "", nil, e.name))
		return len(out) < limit
	})
	return out, nil
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg= redirect so dedup and
// trust scoring see the destination, not the redirector.
func decodeRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}
