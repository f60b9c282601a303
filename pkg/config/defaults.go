package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultMaxBodyBytes    = 1048576 // 1MB

	// Store defaults
	DefaultStoreBackend       = "sqlite"
	DefaultSQLitePath         = "data/atoz.db"
	DefaultSQLiteDriver       = "sqlite"
	DefaultSQLiteMaxOpenConns = 10
	DefaultSQLiteMaxIdleConns = 5
	DefaultSQLiteWALMode      = true
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	// Search index defaults
	DefaultSearchIndexEnabled     = true
	DefaultSearchIndexSyncOnStart = true

	// Capabilities defaults
	DefaultCapabilitiesWatch         = false
	DefaultCapabilitiesDebounceDelay = 100 * time.Millisecond

	// Alpha defaults
	DefaultAlphaFeature   = "alpha_sort"
	DefaultAlphaParamName = "alpha_filter"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "atoz"
	DefaultMetricsSubsystem = "listing"
	DefaultTracingEnabled   = false
	DefaultTracingSampler   = "parent_based"
	DefaultTracingRatio     = 1.0
	DefaultTracingService   = "atoz"
	DefaultOTLPInsecure     = true
	DefaultOTLPTimeout      = 10 * time.Second
)

// DefaultLegacyParamNames are accepted in addition to the filter parameter.
var DefaultLegacyParamNames = []string{"alpha"}

// DefaultQueryDurationBuckets are the histogram buckets for query latency.
var DefaultQueryDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}

// NewDefaultConfig returns a Config with every field set to its default.
// Files are decoded on top of it, so booleans that default to true can
// still be switched off explicitly.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Store: StoreConfig{
			SQLite: SQLiteConfig{
				WALMode: DefaultSQLiteWALMode,
			},
		},
		SearchIndex: SearchIndexConfig{
			Enabled:     DefaultSearchIndexEnabled,
			SyncOnStart: DefaultSearchIndexSyncOnStart,
		},
		Capabilities: CapabilitiesConfig{
			Watch: DefaultCapabilitiesWatch,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
				OTLP: OTLPConfig{
					Insecure: DefaultOTLPInsecure,
				},
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Store.SQLite.Driver == "" {
		cfg.Store.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Store.SQLite.MaxOpenConns == 0 {
		cfg.Store.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Store.SQLite.MaxIdleConns == 0 {
		cfg.Store.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Store.SQLite.BusyTimeout == 0 {
		cfg.Store.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Capabilities defaults
	if cfg.Capabilities.DebounceDelay == 0 {
		cfg.Capabilities.DebounceDelay = DefaultCapabilitiesDebounceDelay
	}

	// Alpha defaults
	if cfg.Alpha.Feature == "" {
		cfg.Alpha.Feature = DefaultAlphaFeature
	}
	if cfg.Alpha.ParamName == "" {
		cfg.Alpha.ParamName = DefaultAlphaParamName
	}
	if cfg.Alpha.LegacyParamNames == nil {
		cfg.Alpha.LegacyParamNames = append([]string(nil), DefaultLegacyParamNames...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.QueryDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.QueryDurationBuckets = append([]float64(nil), DefaultQueryDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}

// ParamNames returns the filter parameter names in lookup order.
func (a AlphaConfig) ParamNames() []string {
	names := []string{a.ParamName}
	for _, n := range a.LegacyParamNames {
		if n != "" && n != a.ParamName {
			names = append(names, n)
		}
	}
	return names
}
