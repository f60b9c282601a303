// Package tracing provides OpenTelemetry tracing for listing requests.
//
// A Tracer is built from config.TracingConfig. When tracing is disabled it
// wraps a noop provider, so callers can start spans unconditionally. When
// enabled, spans are batched to an OTLP gRPC collector and the W3C trace
// context propagator is installed globally.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "listing.list")
//	defer span.End()
//
// # Sampling
//
//   - always: sample every trace
//   - never: sample nothing
//   - ratio: sample a fraction of traces by trace ID
//   - parent_based: follow the caller's decision, ratio for new roots
//
// # Attributes
//
// Listing spans carry atoz.listing.* keys (categories, admin, backend,
// result count) and the alpha.augment child span carries atoz.alpha.state
// and atoz.alpha.filter. SetErrorAttributes records failures with an
// atoz.error.type classifier.
package tracing
