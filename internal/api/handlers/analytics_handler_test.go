package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/machparts/partsearch/internal/api/handlers"
	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsHandler(repo *stubAnalyticsRepo) *handlers.AnalyticsHandler {
	return handlers.NewAnalyticsHandler(services.NewSearchAnalyticsService(repo))
}

func TestTrack_Returns202WithID(t *testing.T) {
	repo := newStubAnalyticsRepo()
	handler := newAnalyticsHandler(repo)

	body := `{"action":"part_clicked","clicked_part_id":"p-1","session_id":"sess-1"}`
	req := httptest.NewRequest("POST", "/api/analytics/search", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Track(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response["analytics_id"])

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was never written")
	}

	events := repo.loggedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, entities.ActionPartClicked, events[0].Action)
	require.NotNil(t, events[0].ClickedPartID)
	assert.Equal(t, "p-1", *events[0].ClickedPartID)
}

func TestTrack_RejectsUnknownAction(t *testing.T) {
	handler := newAnalyticsHandler(newStubAnalyticsRepo())

	body := `{"action":"page_viewed"}`
	req := httptest.NewRequest("POST", "/api/analytics/search", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Track(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrack_RejectsInvalidBody(t *testing.T) {
	handler := newAnalyticsHandler(newStubAnalyticsRepo())

	req := httptest.NewRequest("POST", "/api/analytics/search", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.Track(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestZeroResultQueries_ReturnsReport(t *testing.T) {
	repo := newStubAnalyticsRepo()
	repo.zeroResults = []*repositories.ZeroResultQuery{
		{QueryText: "flux capacitor", Occurrences: 7},
	}
	handler := newAnalyticsHandler(repo)

	req := httptest.NewRequest("GET", "/api/analytics/zero-result-queries?limit=5", nil)
	w := httptest.NewRecorder()

	handler.ZeroResultQueries(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Queries []*repositories.ZeroResultQuery `json:"queries"`
		Count   int                             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "flux capacitor", response.Queries[0].QueryText)
}
