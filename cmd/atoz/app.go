package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mercator-hq/atoz/pkg/alpha"
	"mercator-hq/atoz/pkg/capability"
	"mercator-hq/atoz/pkg/cli"
	"mercator-hq/atoz/pkg/config"
	"mercator-hq/atoz/pkg/listing"
	"mercator-hq/atoz/pkg/listing/storage"
	"mercator-hq/atoz/pkg/telemetry/health"
	"mercator-hq/atoz/pkg/telemetry/logging"
	"mercator-hq/atoz/pkg/telemetry/metrics"
	"mercator-hq/atoz/pkg/telemetry/tracing"
)

// primaryStore is a listing backend that can report its health.
type primaryStore interface {
	listing.Storage
	health.Pinger
}

// app holds the wired components shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
	registry  *capability.Registry
	loader    *capability.Loader
	primary   primaryStore
	index     *storage.MemoryStorage
	service   *listing.Service
	checker   *health.Checker
}

type appOptions struct {
	// searchIndex enables the in-memory index when the config asks for it.
	// One-shot commands leave it off since the index starts empty.
	searchIndex bool
}

// newApp wires storage, capabilities, telemetry and the listing service.
func newApp(cfg *config.Config, logger *logging.Logger, opts appOptions) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: capability.NewRegistry(),
		checker:  health.New(health.DefaultCheckTimeout),
	}
	wired := false
	defer func() {
		if !wired {
			a.Close(context.Background())
		}
	}()

	var err error

	if cfg.Telemetry.Metrics.Enabled {
		a.collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	if a.tracer, err = tracing.New(&cfg.Telemetry.Tracing); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	loaderOpts := []capability.LoaderOption{
		capability.WithLoaderLogger(logger.WithComponent("capability.loader").Slog()),
	}
	if a.collector != nil {
		loaderOpts = append(loaderOpts, capability.WithReloadObserver(a.collector))
	}
	a.loader = capability.NewLoader(a.registry, cfg.Capabilities.FilePath, cfg.Capabilities.Categories, loaderOpts...)
	if err = a.loader.Reload(); err != nil {
		return nil, cli.NewConfigError("capabilities.file_path", err.Error())
	}

	if a.primary, err = openStore(&cfg.Store); err != nil {
		return nil, err
	}
	a.checker.RegisterCheck("store", health.PingCheck(a.primary))

	var index listing.Storage
	if opts.searchIndex && cfg.SearchIndex.Enabled {
		a.index = storage.NewNamedMemoryStorage("search_index")
		index = a.index
		a.checker.RegisterCheck("search_index", health.PingCheck(a.index))
	}
	a.checker.RegisterCheck("capabilities", func(ctx context.Context) error {
		if a.registry.Count() == 0 {
			return errors.New("no categories registered")
		}
		return nil
	})

	augOpts := []alpha.Option{
		alpha.WithFeature(cfg.Alpha.Feature),
		alpha.WithLogger(logger.WithComponent("alpha.augmenter").Slog()),
	}
	svcOpts := []listing.ServiceOption{
		listing.WithServiceLogger(logger.WithComponent("listing.service").Slog()),
		listing.WithTracer(a.tracer),
		listing.WithParamNames(cfg.Alpha.ParamNames()...),
	}
	if a.collector != nil {
		augOpts = append(augOpts, alpha.WithObserver(a.collector))
		svcOpts = append(svcOpts, listing.WithQueryObserver(a.collector))
	}

	a.service = listing.NewService(a.primary, index, alpha.NewAugmenter(a.registry, augOpts...), svcOpts...)
	wired = true
	return a, nil
}

// Close releases storage and flushes traces.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if a.primary != nil {
		errs = append(errs, a.primary.Close())
	}
	if a.index != nil {
		errs = append(errs, a.index.Close())
	}
	if a.tracer != nil {
		errs = append(errs, a.tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// openStore opens the configured primary backend.
func openStore(cfg *config.StoreConfig) (primaryStore, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.SQLite.Path,
			Driver:       cfg.SQLite.Driver,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.SQLite.MaxIdleConns,
			WALMode:      cfg.SQLite.WALMode,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		return store, nil
	default:
		return nil, cli.NewConfigError("store.backend", fmt.Sprintf("unsupported backend %q", cfg.Backend))
	}
}
