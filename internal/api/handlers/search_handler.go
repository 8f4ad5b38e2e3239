package handlers

import (
	"net/http"
	"strconv"

	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
)

// SearchHandler serves guided-funnel autocomplete and free-text query
// analysis.
type SearchHandler struct {
	funnelService *services.FunnelService
	parserService *services.QueryParserService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(funnelService *services.FunnelService, parserService *services.QueryParserService) *SearchHandler {
	return &SearchHandler{
		funnelService: funnelService,
		parserService: parserService,
	}
}

// Autocomplete handles GET /api/search/autocomplete
func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	stepParam := r.URL.Query().Get("step")
	step, err := strconv.Atoi(stepParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "step must be an integer between 1 and 5")
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, _ = strconv.Atoi(limitParam)
	}

	candidates, svcErr := h.funnelService.Autocomplete(
		r.Context(),
		entities.FunnelStep(step),
		r.URL.Query().Get("q"),
		r.URL.Query().Get("scope_id"),
		limit,
	)
	if svcErr != nil {
		respondWithAppError(w, r, svcErr, "failed to fetch suggestions")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// Analyze handles GET /api/search/analyze
func (h *SearchHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	intent, err := h.parserService.Parse(r.Context(), query)
	if err != nil {
		respondWithAppError(w, r, err, "failed to analyze query")
		return
	}

	respondWithJSON(w, http.StatusOK, intent)
}
