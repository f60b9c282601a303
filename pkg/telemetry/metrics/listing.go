package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/atoz/pkg/config"
)

// ListingMetrics tracks storage queries issued for listings.
//
// Metrics:
//   - atoz_listing_queries_total: queries by backend and status
//   - atoz_listing_query_duration_seconds: query latency by backend
type ListingMetrics struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

// NewListingMetrics creates and registers listing query metrics.
func NewListingMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ListingMetrics {
	lm := &ListingMetrics{
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "queries_total",
				Help:      "Total number of listing queries by backend and status",
			},
			[]string{"backend", "status"},
		),

		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "query_duration_seconds",
				Help:      "Duration of listing queries in seconds",
				Buckets:   cfg.QueryDurationBuckets,
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(
		lm.queriesTotal,
		lm.queryDuration,
	)

	return lm
}

// RecordQuery records one storage query.
func (lm *ListingMetrics) RecordQuery(backend, status string, duration time.Duration) {
	lm.queriesTotal.WithLabelValues(backend, status).Inc()
	lm.queryDuration.WithLabelValues(backend).Observe(duration.Seconds())
}
