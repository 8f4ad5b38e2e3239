package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/machparts/partsearch/internal/adapters/cache"
	"github.com/machparts/partsearch/internal/adapters/database"
	"github.com/machparts/partsearch/internal/adapters/events"
	"github.com/machparts/partsearch/internal/adapters/search"
	"github.com/machparts/partsearch/internal/api/handlers"
	"github.com/machparts/partsearch/internal/api/middleware"
	"github.com/machparts/partsearch/internal/api/routes"
	"github.com/machparts/partsearch/internal/application/loaders"
	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/providers"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	"github.com/machparts/partsearch/internal/infrastructure/clients/redis"
	"github.com/machparts/partsearch/internal/infrastructure/clients/typesense"
	"github.com/machparts/partsearch/internal/infrastructure/observability"
	"github.com/machparts/partsearch/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters

	// Create base taxonomy adapter
	baseTaxonomyAdapter := database.NewTaxonomyAdapter(pgClient)

	// Wrap with caching if Redis is available (for read performance optimization)
	var taxonomyAdapter repositories.TaxonomyRepository
	if cacheProvider != nil {
		taxonomyAdapter = database.NewCachedTaxonomyAdapter(baseTaxonomyAdapter, cacheProvider)
		log.Println("✓ Taxonomy adapter wrapped with caching layer")
	} else {
		taxonomyAdapter = baseTaxonomyAdapter
		log.Println("⚠ Taxonomy adapter running without cache (Redis unavailable)")
	}

	compatibilityAdapter := database.NewCompatibilityAdapter(pgClient)
	recommendationAdapter := database.NewRecommendationAdapter(pgClient)
	partAdapter := database.NewPartAdapter(pgClient)
	analyticsAdapter := database.NewSearchAnalyticsAdapter(pgClient)
	savedSearchAdapter := database.NewSavedSearchAdapter(pgClient)

	var indexRepo repositories.AutocompleteIndexRepository

	if typesenseClient != nil {

		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists

		if err := adapter.InitSchema(context.Background()); err != nil {

			log.Printf("Warning: Failed to init Typesense schema: %v", err)

		}

		indexRepo = adapter

	}

	// Initialize event bus for taxonomy change notifications
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	// Initialize services

	partLoaders := loaders.NewLoaders(partAdapter)

	analyticsService := services.NewSearchAnalyticsService(analyticsAdapter)
	funnelService := services.NewFunnelService(taxonomyAdapter, indexRepo)
	parserService := services.NewQueryParserService(taxonomyAdapter)
	compatibilityService := services.NewCompatibilityService(compatibilityAdapter, analyticsService)
	recommendationService := services.NewRecommendationService(recommendationAdapter, partLoaders)
	savedSearchService := services.NewSavedSearchService(savedSearchAdapter)

	// Initialize handlers

	searchHandler := handlers.NewSearchHandler(funnelService, parserService)

	compatibilityHandler := handlers.NewCompatibilityHandler(compatibilityService)

	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)

	savedSearchHandler := handlers.NewSavedSearchHandler(savedSearchService)

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		searchHandler,
		compatibilityHandler,
		recommendationHandler,
		savedSearchHandler,
		analyticsHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	// Stop cache invalidation service
	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Println("Server stopped")
}
