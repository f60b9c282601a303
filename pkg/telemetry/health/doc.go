// Package health provides liveness, readiness and version endpoints.
//
// A Checker holds named CheckFuncs. Readiness runs them concurrently, each
// bounded by a timeout, and reports "ready" only when all pass:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("store", health.PingCheck(store))
//	mux.Handle("GET /health", checker.LivenessHandler())
//	mux.Handle("GET /ready", checker.ReadinessHandler())
package health
