package metrics

import "github.com/prometheus/client_golang/prometheus"

// Match Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "match_requests_total",
			Help:      "Total number of match computations",
		},
		[]string{"status"}, // "ok" / "invalid_input" / "error"
	)

	MatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "match_duration_seconds",
			Help:      "Match computation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	MatchSimilarity = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "match_similarity",
			Help:      "Distribution of computed similarity scores",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	MatchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "match_cache_total",
			Help:      "Match result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// MatchCollectors returns the match metrics for registration on a custom registry.
func MatchCollectors() []prometheus.Collector {
	return []prometheus.Collector{MatchRequestsTotal, MatchDuration, MatchSimilarity, MatchCacheTotal}
}

var matchMetricsRegistered bool

// RegisterMatchMetrics registers match metrics on the default registry. Must be called once from main.
func RegisterMatchMetrics() {
	if matchMetricsRegistered {
		return
	}
	for _, c := range MatchCollectors() {
		prometheus.MustRegister(c)
	}
	matchMetricsRegistered = true
}
