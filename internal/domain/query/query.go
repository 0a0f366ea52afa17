// Package query defines the immutable search query value type.
package query

import (
	"strings"

	"github.com/HeckerOO1/Search-engine/internal/domain"
)

// Query parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length.
	MaxQueryLength    = 1024
	DefaultMaxResults = 12
	MaxMaxResults     = 50
)

// Query is a validated, immutable search query.
type Query struct {
	raw            string
	normalized     string
	forceEmergency bool
	enhanced       bool
	sessionID      string
	maxResults     int
}

// New validates and normalizes a query.
// The normalized form is lowercased with collapsed whitespace.
// maxResults defaults to 12 and is clamped to [1, 50].
func New(raw string, forceEmergency, enhanced bool, sessionID string, maxResults int) (Query, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if len(raw) > MaxQueryLength {
		return Query{}, domain.ErrQueryTooLong
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}

	return Query{
		raw:            strings.TrimSpace(raw),
		normalized:     normalized,
		forceEmergency: forceEmergency,
		enhanced:       enhanced,
		sessionID:      sessionID,
		maxResults:     maxResults,
	}, nil
}

// Normalize lowercases text and collapses runs of whitespace.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// Raw returns the query as the caller typed it, trimmed.
func (q *Query) Raw() string { return q.raw }

// Normalized returns the lowercased, whitespace-collapsed form.
func (q *Query) Normalized() string { return q.normalized }

// Tokens returns the normalized form split on whitespace.
func (q *Query) Tokens() []string { return strings.Fields(q.normalized) }

// ForceEmergency reports whether the caller forced emergency mode.
func (q *Query) ForceEmergency() bool { return q.forceEmergency }

// Enhanced reports whether the probabilistic classifier was requested.
func (q *Query) Enhanced() bool { return q.enhanced }

// SessionID returns the client session identifier, possibly empty.
func (q *Query) SessionID() string { return q.sessionID }

// MaxResults returns the clamped result limit.
func (q *Query) MaxResults() int { return q.maxResults }

// WithRaw returns a copy of the query re-issued with different text,
// keeping flags, session, and limit. Used after spell correction.
func (q *Query) WithRaw(raw string) (Query, error) {
	return New(raw, q.forceEmergency, q.enhanced, q.sessionID, q.maxResults)
}
