package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"mercator-hq/atoz/pkg/api/handlers"
	"mercator-hq/atoz/pkg/api/middleware"
	"mercator-hq/atoz/pkg/capability"
	"mercator-hq/atoz/pkg/config"
	"mercator-hq/atoz/pkg/listing"
	"mercator-hq/atoz/pkg/telemetry/health"
	"mercator-hq/atoz/pkg/telemetry/logging"
	"mercator-hq/atoz/pkg/telemetry/metrics"
)

// BuildInfo is reported by /version.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Deps are the components the server routes to.
type Deps struct {
	Service  *listing.Service
	Registry *capability.Registry
	Health   *health.Checker
	Logger   *logging.Logger

	// Metrics is optional; when nil neither route metrics nor the
	// metrics endpoint are served.
	Metrics     *metrics.Collector
	MetricsPath string

	// Tracer is optional.
	Tracer middleware.Tracer

	// Feature and ParamNames mirror the alphabetic filter settings.
	Feature    string
	ParamNames []string

	Build BuildInfo
}

// Server is the HTTP server for the listing API.
type Server struct {
	config     *config.ServerConfig
	deps       Deps
	handler    http.Handler
	httpServer *http.Server

	mu        sync.RWMutex
	isRunning bool
	addr      net.Addr
}

// New creates a server. Routes are built once, here.
func New(cfg *config.ServerConfig, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is nil")
	}
	if deps.Service == nil || deps.Registry == nil {
		return nil, errors.New("listing service and capability registry are required")
	}
	if deps.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if deps.Health == nil {
		deps.Health = health.New(health.DefaultCheckTimeout)
	}

	s := &Server{config: cfg, deps: deps}
	s.handler = s.setupRoutes()
	return s, nil
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server is already running")
	}
	s.isRunning = true
	s.addr = ln.Addr()
	s.httpServer = &http.Server{
		Handler:        s.handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}
	srv := s.httpServer
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	logger := s.deps.Logger
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting listing server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
		return fmt.Errorf("server shutdown error: %w", err)
	}
	if err := <-errChan; err != nil {
		return err
	}

	logger.Info("listing server stopped")
	return nil
}

// setupRoutes registers every route and wraps the mux in the server-wide
// middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	logger := s.deps.Logger

	items := handlers.NewItemsHandler(s.deps.Service, s.config.MaxBodyBytes, logger.WithComponent("api").Slog())
	categories := handlers.NewCategoriesHandler(s.deps.Registry, s.deps.Service,
		s.deps.Feature, s.deps.ParamNames, logger.WithComponent("api").Slog())

	var recorder middleware.Recorder
	if s.deps.Metrics != nil {
		recorder = s.deps.Metrics
	}

	route := func(pattern string, h http.HandlerFunc) {
		var handler http.Handler = h
		handler = middleware.Tracing(s.deps.Tracer, pattern)(handler)
		handler = middleware.Metrics(recorder, pattern)(handler)
		mux.Handle(pattern, handler)
	}

	route("GET /v1/items", items.List)
	route("GET /admin/v1/items", items.AdminList)
	route("GET /v1/items/{id}", items.Get)
	route("POST /v1/items", items.Create)
	route("DELETE /v1/items/{id}", items.Delete)
	route("GET /v1/categories", categories.List)
	route("GET /v1/categories/{category}/links", categories.Links)

	// Probes and metrics are neither traced nor counted.
	mux.Handle("GET /health", s.deps.Health.LivenessHandler())
	mux.Handle("GET /ready", s.deps.Health.ReadinessHandler())
	mux.Handle("GET /version", health.VersionHandler(s.deps.Build.Version, s.deps.Build.Commit, s.deps.Build.BuildTime))
	if s.deps.Metrics != nil {
		path := s.deps.MetricsPath
		if path == "" {
			path = config.DefaultMetricsPath
		}
		mux.Handle("GET "+path, s.deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.Logging(logger.WithComponent("http"))(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger.WithComponent("http"))(handler)

	return handler
}

// IsRunning returns true if the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the listening address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}
