// Package metrics provides Prometheus metrics for the A-Z listing service.
//
// # Metrics
//
//   - augmentations_total{outcome}: augmenter outcomes (inactive, ordered, filtered)
//   - filter_selections_total{kind,value}: applied letter and symbol filters
//   - queries_total{backend,status}: storage queries per backend
//   - query_duration_seconds{backend}: storage query latency
//   - registry_reloads_total{result}: capability registry reloads
//   - registry_categories: categories currently declared
//   - http_requests_total{route,code} and http_request_duration_seconds{route}
//
// Every name is prefixed with the configured namespace and subsystem
// (atoz_listing_ by default).
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	aug := alpha.NewAugmenter(registry, alpha.WithObserver(collector))
//	svc := listing.NewService(store, index, aug, listing.WithQueryObserver(collector))
//	mux.Handle("GET /metrics", collector.Handler())
package metrics
