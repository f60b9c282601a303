package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/config"
)

// AlphaMetrics tracks alphabetic augmentation outcomes.
//
// Metrics:
//   - atoz_listing_augmentations_total: augmentations by outcome state
//   - atoz_listing_filter_selections_total: applied filters by kind and value
type AlphaMetrics struct {
	augmentationsTotal *prometheus.CounterVec
	selectionsTotal    *prometheus.CounterVec
}

// NewAlphaMetrics creates and registers augmentation metrics.
func NewAlphaMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AlphaMetrics {
	am := &AlphaMetrics{
		augmentationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "augmentations_total",
				Help:      "Total number of listing queries run through the alphabetic augmenter",
			},
			[]string{"outcome"},
		),

		selectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "filter_selections_total",
				Help:      "Total number of alphabetic filters applied",
			},
			[]string{"kind", "value"},
		),
	}

	registry.MustRegister(
		am.augmentationsTotal,
		am.selectionsTotal,
	)

	return am
}

// RecordAugment records one augmentation. A selection is only counted when
// a predicate was actually applied.
func (am *AlphaMetrics) RecordAugment(state alpha.State, filter alpha.Filter) {
	am.augmentationsTotal.WithLabelValues(state.String()).Inc()

	if state == alpha.StateFiltered {
		am.selectionsTotal.WithLabelValues(filter.Kind().String(), filter.Value()).Inc()
	}
}
