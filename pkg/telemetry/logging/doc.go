// Package logging provides structured logging built on log/slog.
//
// # Overview
//
//   - JSON, text and console output formats
//   - Levels debug, info, warn and error, adjustable at runtime
//   - Context-aware logging with request IDs, categories and trace IDs
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	if err != nil {
//	    return err
//	}
//	logger.SetDefault()
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "listing served", "items", 20)
//
// Components that take a *slog.Logger receive logger.Slog() and tag
// themselves with a "component" attribute.
package logging
