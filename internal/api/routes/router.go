package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opentraining/coursecatalog/internal/api/handlers"
	"github.com/opentraining/coursecatalog/internal/api/middleware"
	"github.com/opentraining/coursecatalog/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	courseHandler *handlers.CourseHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	courseHandler *handlers.CourseHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		courseHandler:   courseHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Course endpoints. The facets route must be registered alongside the
	// slug route; ServeMux prefers the literal segment over the wildcard.
	r.mux.HandleFunc("GET /api/courses", r.courseHandler.ListCourses)
	r.mux.HandleFunc("GET /api/courses/facets", r.courseHandler.GetFacets)
	r.mux.HandleFunc("GET /api/courses/{slug}", r.courseHandler.GetCourse)

	// Prometheus scrape endpoint
	r.mux.Handle("GET /metrics", promhttp.Handler())

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	if r.metrics != nil {
		handler = middleware.MetricsMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
