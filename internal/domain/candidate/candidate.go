// Package candidate defines a scored search result.
package candidate

import "github.com/HeckerOO1/Search-engine/internal/domain/result"

// FreshnessLabel buckets a result's age for display.
type FreshnessLabel string

// Freshness label constants.
const (
	JustNow    FreshnessLabel = "just-now"
	VeryRecent FreshnessLabel = "very-recent"
	Today      FreshnessLabel = "today"
	Yesterday  FreshnessLabel = "yesterday"
	Outdated   FreshnessLabel = "outdated"
	// UnknownAge marks results without a usable publication timestamp.
	UnknownAge FreshnessLabel = "unknown"
)

// Badge is the user-facing credibility marker derived from trust.
type Badge string

// Badge constants.
const (
	BadgeVerified   Badge = "verified"
	BadgeUnverified Badge = "unverified"
	BadgeSuspicious Badge = "suspicious"
)

// BadgeFor maps a trust score to its display badge.
func BadgeFor(trustScore float64) Badge {
	switch {
	case trustScore >= 0.8:
		return BadgeVerified
	case trustScore >= 0.5:
		return BadgeUnverified
	default:
		return BadgeSuspicious
	}
}

// Signals holds the per-candidate scoring inputs, each in [0,1]
// except PogoCount.
type Signals struct {
	Trust          float64
	Freshness      float64
	FreshnessLabel FreshnessLabel
	Relevance      float64
	Sensationalism float64
	PogoCount      int
}

// Candidate is a raw result enriched with scoring signals and a final
// score. Created per search call, never persisted beyond the response.
type Candidate struct {
	raw     result.Result
	signals Signals
	final   float64
}

// New creates a scored candidate.
func New(raw result.Result, signals Signals, final float64) Candidate {
	return Candidate{raw: raw, signals: signals, final: final}
}

// Raw returns the underlying provider result.
func (c *Candidate) Raw() result.Result { return c.raw }

// Trust returns the trust score.
func (c *Candidate) Trust() float64 { return c.signals.Trust }

// Freshness returns the freshness score.
func (c *Candidate) Freshness() float64 { return c.signals.Freshness }

// FreshnessLabel returns the categorical age bucket.
func (c *Candidate) FreshnessLabel() FreshnessLabel { return c.signals.FreshnessLabel }

// Relevance returns the query similarity score.
func (c *Candidate) Relevance() float64 { return c.signals.Relevance }

// Sensationalism returns the alarmism penalty.
func (c *Candidate) Sensationalism() float64 { return c.signals.Sensationalism }

// PogoCount returns the session's quick-return count for this url.
func (c *Candidate) PogoCount() int { return c.signals.PogoCount }

// FinalScore returns the combined score in [0,1].
func (c *Candidate) FinalScore() float64 { return c.final }

// Badge returns the credibility badge for the trust score.
func (c *Candidate) Badge() Badge { return BadgeFor(c.signals.Trust) }
