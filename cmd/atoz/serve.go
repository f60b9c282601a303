package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mercator-hq/atoz/pkg/capability"
	"mercator-hq/atoz/pkg/cli"
	"mercator-hq/atoz/pkg/config"
	"mercator-hq/atoz/pkg/server"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the listing API server",
	Long: `Start the HTTP API with the specified configuration.

When a capability file is configured it can be watched for changes
(capabilities.watch) and re-read on a cron schedule
(capabilities.resync_schedule). A failed reload keeps the previous
capabilities.

Examples:
  # Start with defaults and ATOZ_* environment overrides
  atoz serve

  # Start with a config file
  atoz serve --config /etc/atoz/atoz.yaml

  # Override listen address
  atoz serve --listen 0.0.0.0:8080

  # Validate config without starting the server
  atoz serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	a, err := newApp(cfg, logger, appOptions{searchIndex: true})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Close(ctx); err != nil {
			logger.Error("shutdown cleanup failed", "error", err)
		}
	}()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	return serve(ctx, a)
}

// serve runs the HTTP server and the capability refreshers until ctx is
// cancelled or one of them fails.
func serve(ctx context.Context, a *app) error {
	cfg := a.cfg
	logger := a.logger

	if a.index != nil && cfg.SearchIndex.SyncOnStart {
		start := time.Now()
		n, err := a.service.SyncIndex(ctx)
		if err != nil {
			return cli.NewCommandError("serve", fmt.Errorf("search index sync failed: %w", err))
		}
		logger.Info("search index synced", "items", n, "duration", time.Since(start).String())
	}

	srv, err := server.New(&cfg.Server, server.Deps{
		Service:     a.service,
		Registry:    a.registry,
		Health:      a.checker,
		Logger:      logger,
		Metrics:     a.collector,
		MetricsPath: cfg.Telemetry.Metrics.Path,
		Tracer:      a.tracer,
		Feature:     cfg.Alpha.Feature,
		ParamNames:  cfg.Alpha.ParamNames(),
		Build:       server.BuildInfo{Version: Version, Commit: GitCommit, BuildTime: BuildDate},
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	// Build the refreshers before starting anything so a bad schedule
	// leaves nothing running.
	var scheduler *capability.Scheduler
	if cfg.Capabilities.ResyncSchedule != "" {
		scheduler, err = capability.NewScheduler(cfg.Capabilities.ResyncSchedule,
			func(context.Context) error { return a.loader.Reload() },
			logger.Slog())
		if err != nil {
			return cli.NewConfigError("capabilities.resync_schedule", err.Error())
		}
	}

	var watcher *capability.FileWatcher
	if cfg.Capabilities.Watch {
		watcher, err = capability.NewFileWatcher(cfg.Capabilities.FilePath, cfg.Capabilities.DebounceDelay,
			logger.Slog())
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start(ctx)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Watch(ctx, a.loader.Reload)
		})
	}
	if scheduler != nil {
		g.Go(func() error {
			return scheduler.Run(ctx)
		})
	}

	logger.Info("atoz started",
		"version", Version,
		"address", cfg.Server.ListenAddress,
		"categories", a.registry.Count(),
		"watch", cfg.Capabilities.Watch,
		"resync_schedule", cfg.Capabilities.ResyncSchedule,
	)

	if err := g.Wait(); err != nil {
		return cli.NewCommandError("serve", err)
	}
	logger.Info("atoz stopped")
	return nil
}
