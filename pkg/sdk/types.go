package sdk

import "time"

// Mode names the ranking profile the service applied.
type Mode string

// Ranking modes.
const (
	ModeStandard  Mode = "standard"
	ModeEmergency Mode = "emergency"
)

// Action names a feedback interaction.
type Action string

// Feedback actions.
const (
	ActionClick  Action = "click"
	ActionReturn Action = "return"
)

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query          string `json:"query"`
	ForceEmergency bool   `json:"force_emergency,omitempty"`
	Enhanced       bool   `json:"enhanced,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
	MaxResults     int    `json:"max_results,omitempty"`
}

// Result is one scored search entry.
type Result struct {
	Title          string     `json:"title"`
	Link           string     `json:"link"`
	Snippet        string     `json:"snippet,omitempty"`
	Source         string     `json:"source,omitempty"`
	Tier           string     `json:"tier"`
	Published      *time.Time `json:"published,omitempty"`
	Score          float64    `json:"score"`
	Relevance      float64    `json:"relevance"`
	Freshness      float64    `json:"freshness"`
	FreshnessLabel string     `json:"freshness_label"`
	Trust          float64    `json:"trust"`
	Badge          string     `json:"badge"`
	Sensationalism float64    `json:"sensationalism"`
	PogoCount      int        `json:"pogo_count,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Results           []Result `json:"results"`
	Mode              Mode     `json:"mode"`
	Confidence        float64  `json:"confidence"`
	Triggers          []string `json:"triggers,omitempty"`
	TiersAttempted    []string `json:"tiers_attempted"`
	Exhausted         bool     `json:"exhausted"`
	CorrectedQuery    string   `json:"corrected_query,omitempty"`
	ElapsedMS         int64    `json:"elapsed_ms"`
	ClassifierEnabled bool     `json:"classifier_enabled"`
	SessionID         string   `json:"session_id"`
	Cached            bool     `json:"cached,omitempty"`
}

// FeedbackRequest is the body of POST /api/feedback.
type FeedbackRequest struct {
	Action    Action `json:"action"`
	URL       string `json:"url"`
	Query     string `json:"query,omitempty"`
	SessionID string `json:"session_id"`
}

// FeedbackResponse reports the effect of a feedback event.
type FeedbackResponse struct {
	PogoDetected   bool `json:"pogo_detected"`
	PenaltyApplied bool `json:"penalty_applied"`
	PogoCount      int  `json:"pogo_count"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	SearchesToday    int64 `json:"searches_today"`
	EmergenciesToday int64 `json:"emergencies_today"`
	PogosToday       int64 `json:"pogos_today"`
	CacheHitsToday   int64 `json:"cache_hits_today"`
	ActiveSessions   int   `json:"active_sessions"`
	ClassifierLoaded bool  `json:"classifier_loaded"`
	UptimeSeconds    int64 `json:"uptime_s"`
}

// HealthResponse is the body of GET /health. Status is "ok",
// "degraded", or "error"; Degraded still serves traffic.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
