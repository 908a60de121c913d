package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/opentraining/coursecatalog/internal/infrastructure/observability"
)

// MetricsMiddleware records request counts and latencies per route.
func MetricsMiddleware(m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(ww.status)

			path := normalizePath(r.URL.Path)

			m.RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			m.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// normalizePath collapses slug routes to keep metric label cardinality bounded.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if strings.HasPrefix(path, "/api/courses/") && path != "/api/courses/facets" {
		return "/api/courses/{slug}"
	}
	return path
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
