package handlers

import (
	"net/http"

	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
)

// RecommendationHandler serves frequently-bought-together suggestions.
type RecommendationHandler struct {
	service *services.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// GetRecommendations handles GET /api/recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	anchorID := r.URL.Query().Get("anchor_id")
	kind := entities.AnchorKind(r.URL.Query().Get("anchor_kind"))

	recommendations, err := h.service.GetRecommendations(r.Context(), anchorID, kind)
	if err != nil {
		respondWithAppError(w, r, err, "failed to fetch recommendations")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}
