package middleware

import (
	"net/http"
	"time"
)

// Recorder receives per-route request outcomes.
type Recorder interface {
	RecordHTTPRequest(route string, code int, duration time.Duration)
}

// Metrics records the status and latency of requests to one route. route
// is the registered mux pattern, which keeps label cardinality bounded.
func Metrics(recorder Recorder, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)
			recorder.RecordHTTPRequest(route, rw.statusCode, time.Since(start))
		})
	}
}
