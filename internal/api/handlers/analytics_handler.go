package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
)

// AnalyticsHandler accepts search analytics events and serves the
// zero-result query report.
type AnalyticsHandler struct {
	service *services.SearchAnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *services.SearchAnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type trackEventRequest struct {
	Action         string  `json:"action"`
	QueryText      string  `json:"query_text"`
	MachineTypeID  *string `json:"machine_type_id"`
	ManufacturerID *string `json:"manufacturer_id"`
	MachineModelID *string `json:"machine_model_id"`
	SymptomID      *string `json:"symptom_id"`
	CategoryID     *string `json:"category_id"`
	ResultsCount   int     `json:"results_count"`
	ClickedPartID  *string `json:"clicked_part_id"`
	Converted      bool    `json:"converted"`
	SessionID      string  `json:"session_id"`
}

// Track handles POST /api/analytics/search. It always answers 202: the
// write happens in the background and its outcome never reaches the
// caller.
func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action := entities.SearchAction(req.Action)
	switch action {
	case entities.ActionSearchExecuted, entities.ActionPartClicked, entities.ActionOrderConverted:
	default:
		respondWithError(w, http.StatusBadRequest, "unknown analytics action")
		return
	}

	id := h.service.Track(r.Context(), &entities.SearchEvent{
		Action:         action,
		QueryText:      req.QueryText,
		MachineTypeID:  req.MachineTypeID,
		ManufacturerID: req.ManufacturerID,
		MachineModelID: req.MachineModelID,
		SymptomID:      req.SymptomID,
		CategoryID:     req.CategoryID,
		ResultsCount:   req.ResultsCount,
		ClickedPartID:  req.ClickedPartID,
		Converted:      req.Converted,
		SessionID:      req.SessionID,
	})

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"analytics_id": id,
	})
}

// ZeroResultQueries handles GET /api/analytics/zero-result-queries
func (h *AnalyticsHandler) ZeroResultQueries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, _ = strconv.Atoi(limitParam)
	}

	queries, err := h.service.GetZeroResultQueries(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, r, err, "failed to fetch zero-result queries")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": queries,
		"count":   len(queries),
	})
}
