package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/opentraining/coursecatalog/internal/adapters/cache"
	"github.com/opentraining/coursecatalog/internal/adapters/database"
	"github.com/opentraining/coursecatalog/internal/api/handlers"
	"github.com/opentraining/coursecatalog/internal/api/middleware"
	"github.com/opentraining/coursecatalog/internal/api/routes"
	"github.com/opentraining/coursecatalog/internal/application/services"
	"github.com/opentraining/coursecatalog/internal/domain/providers"
	"github.com/opentraining/coursecatalog/internal/infrastructure/clients/postgres"
	"github.com/opentraining/coursecatalog/internal/infrastructure/clients/redis"
	"github.com/opentraining/coursecatalog/internal/infrastructure/observability"
	"github.com/opentraining/coursecatalog/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("course-catalog-api", cfg.Env)

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The API works without it; responses are
	// just not cached.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without response cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize adapters
	courseAdapter := database.NewCourseAdapter(pgClient)
	categoryAdapter := database.NewCategoryAdapter(pgClient)

	// Initialize services
	searchService := services.NewCourseSearchService(courseAdapter)
	facetService := services.NewFacetService(courseAdapter, categoryAdapter)

	// Initialize handlers
	courseHandler := handlers.NewCourseHandler(searchService, facetService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, cfg.Search.FacetCacheTTL)
	}

	router := routes.NewRouter(courseHandler, cacheMiddleware, metrics)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
