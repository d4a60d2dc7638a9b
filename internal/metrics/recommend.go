package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "songrec",
			Name:      "recommend_queries_total",
			Help:      "Total recommendation queries",
		},
		[]string{"outcome"}, // "matched" (non-empty result) / "empty"
	)

	RecommendResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "songrec",
			Name:      "recommend_result_size",
			Help:      "Number of items returned per recommendation query",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	RecommendCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "songrec",
			Name:      "recommend_cache_total",
			Help:      "Recommendation result cache hits and misses",
		},
		[]string{"result"},
	)
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendQueriesTotal)
	prometheus.MustRegister(RecommendResultSize)
	prometheus.MustRegister(RecommendCacheTotal)
	recommendMetricsRegistered = true
}
