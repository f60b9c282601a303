// Package server runs the HTTP API for alphabetic listings.
//
// The server mounts the listing and category handlers, the health probes
// (/health, /ready), build information (/version) and, when a metrics
// collector is supplied, the Prometheus endpoint.
//
// Every API route is wrapped in route-labelled metrics and tracing
// middleware; the whole mux sits behind recovery, request ID and access
// logging.
//
//	srv, err := server.New(&cfg.Server, server.Deps{
//	    Service:  svc,
//	    Registry: registry,
//	    Health:   checker,
//	    Logger:   logger,
//	    Metrics:  collector,
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx) // blocks until ctx is cancelled
package server
