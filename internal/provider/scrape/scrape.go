// Package scrape implements the configurable HTML scraping tier. One
// engine definition is a result URL template plus the CSS selectors
// that locate title, link, and snippet inside each result block, so
// new engines ship as config instead of code.
package scrape

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

// Selectors locate the pieces of one result block.
type Selectors struct {
	Result  string
	Title   string
	Link    string
	Snippet string
}

// Engine scrapes one search engine's result page.
type Engine struct {
	name      string
	urlFormat string
	sel       Selectors
	client    *http.Client
}

var _ provider.Adapter = (*Engine)(nil)

// New builds a scraping tier. urlFormat must contain exactly one %s
// placeholder for the escaped query.
func New(name, urlFormat string, sel Selectors, client *http.Client) (*Engine, error) {
	if strings.Count(urlFormat, "%s") != 1 {
		return nil, fmt.Errorf("scrape tier %s: url must contain one %%s placeholder", name)
	}
	if sel.Result == "" || sel.Title == "" {
		return nil, fmt.Errorf("scrape tier %s: result and title selectors are required", name)
	}
	if sel.Link == "" {
		sel.Link = sel.Title
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Engine{name: name, urlFormat: urlFormat, sel: sel, client: client}, nil
}

// Preset returns the built-in definition for a known engine.
func Preset(engine string) (urlFormat string, sel Selectors, ok bool) {
	switch engine {
	case "brave":
		return "https://search.brave.com/search?q=%s", Selectors{
			Result:  "div.snippet",
			Title:   ".title",
			Link:    "a",
			Snippet: ".snippet-description",
		}, true
	case "bing":
		return "https://www.bing.com/search?q=%s", Selectors{
			Result:  "li.b_algo",
			Title:   "h2",
			Link:    "h2 a",
			Snippet: ".b_caption p",
		}, true
	case "yahoo":
		return "https://search.yahoo.com/search?p=%s", Selectors{
			Result:  "div.algo",
			Title:   "h3.title",
			Link:    "h3.title a",
			Snippet: ".compText p",
		}, true
	case "ecosia":
		return "https://www.ecosia.org/search?q=%s", Selectors{
			Result:  "div.result",
			Title:   "a.result-title",
			Link:    "a.result-title",
			Snippet: "p.result-snippet",
		}, true
	case "ask":
		return "https://www.ask.com/web?q=%s", Selectors{
			Result:  "div.PartialSearchResults-item",
			Title:   "a.PartialSearchResults-item-title-link",
			Link:    "a.PartialSearchResults-item-title-link",
			Snippet: "p.PartialSearchResults-item-abstract",
		}, true
	}
	return "", Selectors{}, false
}

// Name returns the tier identifier.
func (e *Engine) Name() string { return e.name }

// Fetch loads the result page and extracts result blocks.
func (e *Engine) Fetch(ctx context.Context, query string, c provider.Constraints) ([]result.Result, error) {
	pageURL := fmt.Sprintf(e.urlFormat, url.QueryEscape(query))
	body, err := provider.GetBody(ctx, e.client, pageURL, "text/html")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	limit := c.MaxResults
	if limit <= 0 {
		limit = provider.DefaultFetchLimit
	}

	var out []result.Result
	doc.Find(e.sel.Result).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find(e.sel.Title).First().Text())
		href, _ := s.Find(e.sel.Link).First().Attr("href")
		link := resolveLink(base, href)
		if title == "" || link == "" {
			return true
		}
		var snippet string
		if e.sel.Snippet != "" {
			snippet = strings.TrimSpace(s.Find(e.sel.Snippet).First().Text())
		}
		out = append(out, result.New(title, link, snippet, "", nil, e.name))
		return len(out) < limit
	})
	return out, nil
}

// resolveLink absolutizes href against the page URL and rejects
// anything that is not plain http(s).
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := base.Parse(href)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return u.String()
}
