package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog and ingestion Prometheus metrics.
var (
	CatalogSongs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "songrec",
			Name:      "catalog_songs",
			Help:      "Number of song records in the current catalog snapshot",
		},
	)

	CatalogVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "songrec",
			Name:      "catalog_version",
			Help:      "Generation number of the current catalog snapshot",
		},
	)

	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "songrec",
			Name:      "catalog_loads_total",
			Help:      "Total catalog load attempts",
		},
		[]string{"status"}, // "ok" / "error"
	)

	CatalogRowsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "songrec",
			Name:      "catalog_rows_skipped_total",
			Help:      "Dataset rows dropped during parsing",
		},
	)

	DatasetFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "songrec",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Dataset download duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"status"},
	)

	DatasetBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "songrec",
			Name:      "dataset_bytes_total",
			Help:      "Total dataset bytes downloaded",
		},
	)

	DatasetCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "songrec",
			Name:      "dataset_cache_total",
			Help:      "Dataset cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog and ingestion metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogSongs)
	prometheus.MustRegister(CatalogVersion)
	prometheus.MustRegister(CatalogLoadsTotal)
	prometheus.MustRegister(CatalogRowsSkippedTotal)
	prometheus.MustRegister(DatasetFetchDuration)
	prometheus.MustRegister(DatasetBytesTotal)
	prometheus.MustRegister(DatasetCacheTotal)
	catalogMetricsRegistered = true
}
