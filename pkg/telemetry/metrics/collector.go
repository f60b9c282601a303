package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/config"
)

// Collector owns every Prometheus metric exported by the service. It
// implements alpha.Observer and listing.QueryObserver so it can be handed
// straight to the augmenter and the listing service.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	alphaMetrics    *AlphaMetrics
	listingMetrics  *ListingMetrics
	registryMetrics *RegistryMetrics
	httpMetrics     *HTTPMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created
// with the Go runtime and process collectors attached.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "atoz",
//		Subsystem: "listing",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.QueryDurationBuckets) == 0 {
		cfg.QueryDurationBuckets = config.DefaultQueryDurationBuckets
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		alphaMetrics:    NewAlphaMetrics(cfg, registry),
		listingMetrics:  NewListingMetrics(cfg, registry),
		registryMetrics: NewRegistryMetrics(cfg, registry),
		httpMetrics:     NewHTTPMetrics(cfg, registry),
	}
}

// ObserveAugment implements alpha.Observer.
func (c *Collector) ObserveAugment(state alpha.State, filter alpha.Filter) {
	if !c.config.Enabled {
		return
	}

	c.alphaMetrics.RecordAugment(state, filter)
}

// ObserveQuery implements listing.QueryObserver.
func (c *Collector) ObserveQuery(backend, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.listingMetrics.RecordQuery(backend, status, duration)
}

// RecordRegistryReload records a capability registry reload.
//
// Parameters:
//   - result: "success" or "error"
//   - categories: number of categories after the reload (ignored on error)
func (c *Collector) RecordRegistryReload(result string, categories int) {
	if !c.config.Enabled {
		return
	}

	c.registryMetrics.RecordReload(result, categories)
}

// RecordHTTPRequest records a served HTTP request.
//
// Parameters:
//   - route: the matched route pattern (e.g., "GET /v1/items")
//   - code: the response status code
//   - duration: time spent serving the request
func (c *Collector) RecordHTTPRequest(route string, code int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.httpMetrics.RecordRequest(route, code, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
