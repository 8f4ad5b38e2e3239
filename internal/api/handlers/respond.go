package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/machparts/partsearch/internal/infrastructure/observability"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps a classified application error onto an HTTP
// status. Unclassified errors become a 500 with the fallback message so
// internals never leak to the client.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, errMessage(err, fallback))
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, errMessage(err, fallback))
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, errMessage(err, fallback))
	case apperrors.ErrorTypeUpstream:
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg(fallback)
		respondWithError(w, http.StatusServiceUnavailable, fallback)
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg(fallback)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func errMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
