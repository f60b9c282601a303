package config

import "time"

// Config is the root configuration structure for the A-Z listing service.
// It contains the HTTP server, content store, search index, category
// capabilities, alphabetic filter and telemetry settings.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and request size limits.
	Server ServerConfig `yaml:"server"`

	// Store contains configuration for the primary content store.
	Store StoreConfig `yaml:"store"`

	// SearchIndex contains configuration for the secondary search index
	// that answers unfiltered listings.
	SearchIndex SearchIndexConfig `yaml:"search_index"`

	// Capabilities contains the source of category capability declarations.
	Capabilities CapabilitiesConfig `yaml:"capabilities"`

	// Alpha contains alphabetic filter settings.
	Alpha AlphaConfig `yaml:"alpha"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes limits the size of request bodies on write endpoints.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// StoreConfig contains configuration for the primary content store.
type StoreConfig struct {
	// Backend specifies the storage backend.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/atoz.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// SearchIndexConfig contains configuration for the search index mirror.
type SearchIndexConfig struct {
	// Enabled controls whether unfiltered listings are answered by the
	// search index. Filtered listings always use the primary store.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// SyncOnStart copies the primary store into the index at startup.
	// Default: true
	SyncOnStart bool `yaml:"sync_on_start"`
}

// CapabilitiesConfig contains the source of category capabilities.
type CapabilitiesConfig struct {
	// FilePath is an optional YAML file declaring category features.
	// When empty, only Categories below is used.
	FilePath string `yaml:"file_path"`

	// Watch enables automatic reloading when the capabilities file changes.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceDelay collapses bursts of file events into one reload.
	// Default: 100ms
	DebounceDelay time.Duration `yaml:"debounce_delay"`

	// ResyncSchedule is a cron expression for periodic reloads from disk.
	// Empty disables periodic reloads.
	// Example: "*/5 * * * *"
	ResyncSchedule string `yaml:"resync_schedule"`

	// Categories declares features inline, keyed by category name.
	// Example: {book: [alpha_sort]}
	Categories map[string][]string `yaml:"categories"`
}

// AlphaConfig contains alphabetic filter settings.
type AlphaConfig struct {
	// Feature is the capability a category must declare.
	// Default: "alpha_sort"
	Feature string `yaml:"feature"`

	// ParamName is the request parameter carrying the filter.
	// Default: "alpha_filter"
	ParamName string `yaml:"param_name"`

	// LegacyParamNames are also accepted on input, after ParamName.
	// Default: ["alpha"]
	LegacyParamNames []string `yaml:"legacy_param_names"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "atoz"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "listing"
	Subsystem string `yaml:"subsystem"`

	// QueryDurationBuckets defines histogram buckets for query duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0]
	QueryDurationBuckets []float64 `yaml:"query_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio", "parent_based"
	// Default: "parent_based"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Used when Sampler is "ratio" or "parent_based".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "atoz"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
