package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "searches_total",
			Help:      "Total number of search requests by decided mode",
		},
		[]string{"mode"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "satya",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	TierAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "tier_attempts_total",
			Help:      "Provider tier attempts by outcome",
		},
		[]string{"tier", "status"}, // "ok" / "empty" / "error" / "timeout"
	)

	TierDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "satya",
			Name:      "tier_duration_seconds",
			Help:      "Provider tier fetch duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tier"},
	)

	ClassifierTriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "classifier_triggers_total",
			Help:      "Emergency decisions by trigger kind",
		},
		[]string{"kind"}, // "keyword" / "model" / "forced"
	)

	FeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "feedback_events_total",
			Help:      "Feedback events by action",
		},
		[]string{"action"},
	)

	PogoEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "pogo_events_total",
			Help:      "Detected pogo-stick returns",
		},
	)

	RankCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "rank_cache_total",
			Help:      "Ranked response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(TierAttemptsTotal)
	prometheus.MustRegister(TierDuration)
	prometheus.MustRegister(ClassifierTriggersTotal)
	prometheus.MustRegister(FeedbackEventsTotal)
	prometheus.MustRegister(PogoEventsTotal)
	prometheus.MustRegister(RankCacheTotal)
	searchMetricsRegistered = true
}
