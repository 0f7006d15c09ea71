package middleware

import (
	"net/http"
	"time"

	"dkylabs.com/web/internal/metrics"
)

// Metrics records request latency by route pattern and status.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := NewResponseRecorder(w)
		next.ServeHTTP(rw, r)
		metrics.ObserveRequest(routePattern(r), rw.Status(), time.Since(start))
	})
}
