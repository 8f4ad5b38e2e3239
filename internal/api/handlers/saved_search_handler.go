package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/machparts/partsearch/internal/application/services"
)

// SavedSearchHandler manages customer-owned saved searches.
type SavedSearchHandler struct {
	service *services.SavedSearchService
}

// NewSavedSearchHandler creates a new saved search handler
func NewSavedSearchHandler(service *services.SavedSearchService) *SavedSearchHandler {
	return &SavedSearchHandler{service: service}
}

type saveSearchRequest struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Query      json.RawMessage `json:"query"`
}

// Save handles POST /api/saved-searches
func (h *SavedSearchHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	search, err := h.service.Save(r.Context(), req.CustomerID, req.Name, req.Query)
	if err != nil {
		respondWithAppError(w, r, err, "failed to save search")
		return
	}

	respondWithJSON(w, http.StatusCreated, search)
}

// List handles GET /api/saved-searches
func (h *SavedSearchHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")

	searches, err := h.service.List(r.Context(), customerID)
	if err != nil {
		respondWithAppError(w, r, err, "failed to list saved searches")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"saved_searches": searches,
		"count":          len(searches),
	})
}

// Delete handles DELETE /api/saved-searches/{id}
func (h *SavedSearchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	customerID := r.URL.Query().Get("customer_id")

	if err := h.service.Delete(r.Context(), customerID, id); err != nil {
		respondWithAppError(w, r, err, "failed to delete saved search")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
