// Package result defines the raw provider result record.
package result

import (
	"net/url"
	"strings"
	"time"
)

// Result is a single raw record returned by a provider tier.
// It lives only for the duration of one discovery call.
type Result struct {
	title        string
	link         string
	snippet      string
	sourceDomain string
	published    time.Time
	hasPublished bool
	tier         string
}

// New creates a raw result. The source domain is derived from the link
// when not supplied by the provider. published may be nil.
func New(title, link, snippet, sourceDomain string, published *time.Time, tier string) Result {
	if sourceDomain == "" {
		sourceDomain = DomainOf(link)
	}
	r := Result{
		title:        strings.TrimSpace(title),
		link:         strings.TrimSpace(link),
		snippet:      strings.TrimSpace(snippet),
		sourceDomain: sourceDomain,
		tier:         tier,
	}
	if published != nil && !published.IsZero() {
		r.published = *published
		r.hasPublished = true
	}
	return r
}

// Accessors take value receivers so a Result handed out by another
// type can be read without binding it to a variable first.

// Title returns the result title.
func (r Result) Title() string { return r.title }

// Link returns the result link as delivered by the provider.
func (r Result) Link() string { return r.link }

// Snippet returns the result snippet.
func (r Result) Snippet() string { return r.snippet }

// SourceDomain returns the registrable source domain, without www.
func (r Result) SourceDomain() string { return r.sourceDomain }

// Published returns the publication time and whether it is known.
func (r Result) Published() (time.Time, bool) { return r.published, r.hasPublished }

// Tier returns the identifier of the tier that delivered this result.
func (r Result) Tier() string { return r.tier }

// Canonical returns the deduplication key for the link:
// lowercased scheme/host with default ports and a trailing slash
// stripped, query and fragment dropped.
func (r Result) Canonical() string { return CanonicalizeLink(r.link) }

// FillMissing copies title and snippet from other where this result
// lacks them. Used when a duplicate from a lower-priority tier carries
// text the kept occurrence is missing.
func (r *Result) FillMissing(other Result) {
	if r.title == "" {
		r.title = other.title
	}
	if r.snippet == "" {
		r.snippet = other.snippet
	}
	if !r.hasPublished && other.hasPublished {
		r.published = other.published
		r.hasPublished = true
	}
}

// CanonicalizeLink normalizes a link for deduplication.
// Unparseable links canonicalize to their trimmed lowercase form.
func CanonicalizeLink(link string) string {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return strings.ToLower(link)
	}
	host := strings.ToLower(u.Host)
	switch u.Scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}
	path := strings.TrimSuffix(u.EscapedPath(), "/")
	return strings.ToLower(u.Scheme) + "://" + host + path
}

// DomainOf extracts the source domain from a link, stripping any port
// and a leading www.
func DomainOf(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
