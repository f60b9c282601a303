// Package middleware provides the HTTP middleware chain for the API.
//
// Server-wide, outermost first:
//
//	Recovery → RequestID → Logging → mux
//
// Per route, applied at registration with the route pattern as label:
//
//	Metrics → Tracing → handler
package middleware
