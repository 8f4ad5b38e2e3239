package routes

import (
	"net/http"

	"github.com/machparts/partsearch/internal/api/handlers"
	"github.com/machparts/partsearch/internal/api/middleware"
	"github.com/machparts/partsearch/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler         *handlers.SearchHandler
	compatibilityHandler  *handlers.CompatibilityHandler
	recommendationHandler *handlers.RecommendationHandler
	savedSearchHandler    *handlers.SavedSearchHandler
	analyticsHandler      *handlers.AnalyticsHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	compatibilityHandler *handlers.CompatibilityHandler,
	recommendationHandler *handlers.RecommendationHandler,
	savedSearchHandler *handlers.SavedSearchHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		searchHandler:         searchHandler,
		compatibilityHandler:  compatibilityHandler,
		recommendationHandler: recommendationHandler,
		savedSearchHandler:    savedSearchHandler,
		analyticsHandler:      analyticsHandler,
		cacheMiddleware:       cacheMiddleware,
		metrics:               metrics,
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

	// Guided search endpoints
	r.mux.HandleFunc("GET /api/search/autocomplete", r.searchHandler.Autocomplete)
	r.mux.HandleFunc("GET /api/search/analyze", r.searchHandler.Analyze)

	// Compatibility endpoints
	r.mux.HandleFunc("GET /api/models/{id}/parts", r.compatibilityHandler.SuggestParts)
	r.mux.HandleFunc("GET /api/models/{modelId}/parts/{partId}/compatibility", r.compatibilityHandler.Check)

	// Recommendation endpoints
	r.mux.HandleFunc("GET /api/recommendations", r.recommendationHandler.GetRecommendations)

	// Saved search endpoints
	r.mux.HandleFunc("POST /api/saved-searches", r.savedSearchHandler.Save)
	r.mux.HandleFunc("GET /api/saved-searches", r.savedSearchHandler.List)
	r.mux.HandleFunc("DELETE /api/saved-searches/{id}", r.savedSearchHandler.Delete)

	// Analytics endpoints
	r.mux.HandleFunc("POST /api/analytics/search", r.analyticsHandler.Track)
	r.mux.HandleFunc("GET /api/analytics/zero-result-queries", r.analyticsHandler.ZeroResultQueries)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
