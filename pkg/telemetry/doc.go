// Package telemetry groups the observability packages for the listing
// service.
//
//   - logging: slog-based structured logging with request context fields
//   - metrics: Prometheus collectors for augmentation, queries and reloads
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness, readiness and version endpoints
//
// Each subpackage is configured from the telemetry section of config.Config
// and is safe to use with its feature disabled.
package telemetry
