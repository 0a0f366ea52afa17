package metrics

import "github.com/prometheus/client_golang/prometheus"

// Semantic scoring oracle Prometheus metrics.
var (
	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "oracle_requests_total",
			Help:      "Total number of scoring oracle requests",
		},
		[]string{"model", "status"},
	)

	OracleRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "satya",
			Name:      "oracle_request_duration_seconds",
			Help:      "Scoring oracle request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	OracleCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satya",
			Name:      "oracle_cache_total",
			Help:      "Oracle embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var oracleMetricsRegistered bool

// RegisterOracleMetrics registers Prometheus oracle metrics. Must be called once from main.
func RegisterOracleMetrics() {
	if oracleMetricsRegistered {
		return
	}
	prometheus.MustRegister(OracleRequestsTotal)
	prometheus.MustRegister(OracleRequestDuration)
	prometheus.MustRegister(OracleCacheTotal)
	oracleMetricsRegistered = true
}
