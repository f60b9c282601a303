package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/atoz/pkg/config"
)

// RegistryMetrics tracks the capability registry.
//
// Metrics:
//   - atoz_listing_registry_reloads_total: reloads by result
//   - atoz_listing_registry_categories: categories currently declared
type RegistryMetrics struct {
	reloadsTotal *prometheus.CounterVec
	categories   prometheus.Gauge
}

// NewRegistryMetrics creates and registers capability registry metrics.
func NewRegistryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RegistryMetrics {
	rm := &RegistryMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_reloads_total",
				Help:      "Total number of capability registry reloads",
			},
			[]string{"result"},
		),

		categories: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_categories",
				Help:      "Number of categories in the capability registry",
			},
		),
	}

	registry.MustRegister(
		rm.reloadsTotal,
		rm.categories,
	)

	return rm
}

// RecordReload records a reload attempt. The category gauge only moves on
// success; a failed reload keeps the previous snapshot.
func (rm *RegistryMetrics) RecordReload(result string, categories int) {
	rm.reloadsTotal.WithLabelValues(result).Inc()

	if result == "success" {
		rm.categories.Set(float64(categories))
	}
}
