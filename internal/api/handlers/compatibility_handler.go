package handlers

import (
	"net/http"

	"github.com/machparts/partsearch/internal/application/services"
)

// CompatibilityHandler serves part listings and fitment checks for a
// machine model.
type CompatibilityHandler struct {
	service *services.CompatibilityService
}

// NewCompatibilityHandler creates a new compatibility handler
func NewCompatibilityHandler(service *services.CompatibilityService) *CompatibilityHandler {
	return &CompatibilityHandler{service: service}
}

// SuggestParts handles GET /api/models/{id}/parts
func (h *CompatibilityHandler) SuggestParts(w http.ResponseWriter, r *http.Request) {
	modelID := r.PathValue("id")
	if modelID == "" {
		respondWithError(w, http.StatusBadRequest, "model ID is required")
		return
	}

	parts, err := h.service.SuggestParts(
		r.Context(),
		modelID,
		r.URL.Query().Get("category_id"),
		r.URL.Query().Get("session_id"),
	)
	if err != nil {
		respondWithAppError(w, r, err, "failed to list compatible parts")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"parts": parts,
		"count": len(parts),
	})
}

// Check handles GET /api/models/{modelId}/parts/{partId}/compatibility
func (h *CompatibilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	modelID := r.PathValue("modelId")
	partID := r.PathValue("partId")

	verdict, err := h.service.Check(r.Context(), modelID, partID)
	if err != nil {
		respondWithAppError(w, r, err, "failed to check compatibility")
		return
	}

	respondWithJSON(w, http.StatusOK, verdict)
}
