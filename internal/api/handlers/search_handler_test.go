package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/machparts/partsearch/internal/api/handlers"
	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchHandler(taxonomyRepo *stubTaxonomyRepo) *handlers.SearchHandler {
	funnel := services.NewFunnelService(taxonomyRepo, nil)
	parser := services.NewQueryParserService(taxonomyRepo)
	return handlers.NewSearchHandler(funnel, parser)
}

func TestAutocomplete_ReturnsCandidates(t *testing.T) {
	repo := &stubTaxonomyRepo{
		candidates: []*entities.Candidate{
			{ID: "mt-1", Name: "Tractor", PopularityScore: 9, Step: entities.StepMachineType},
		},
	}
	handler := newSearchHandler(repo)

	req := httptest.NewRequest("GET", "/api/search/autocomplete?step=1&q=tra", nil)
	w := httptest.NewRecorder()

	handler.Autocomplete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Candidates []*entities.Candidate `json:"candidates"`
		Count      int                   `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Candidates, 1)
	assert.Equal(t, "mt-1", response.Candidates[0].ID)
}

func TestAutocomplete_RejectsNonNumericStep(t *testing.T) {
	handler := newSearchHandler(&stubTaxonomyRepo{})

	req := httptest.NewRequest("GET", "/api/search/autocomplete?step=first", nil)
	w := httptest.NewRecorder()

	handler.Autocomplete(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutocomplete_RejectsOutOfRangeStep(t *testing.T) {
	handler := newSearchHandler(&stubTaxonomyRepo{})

	req := httptest.NewRequest("GET", "/api/search/autocomplete?step=9", nil)
	w := httptest.NewRecorder()

	handler.Autocomplete(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_ReturnsParsedIntent(t *testing.T) {
	repo := &stubTaxonomyRepo{
		machineTypes: []*entities.MachineType{{ID: "mt-1", Name: "Tractor"}},
		manufacturers: []*entities.Manufacturer{
			{ID: "mf-1", Name: "Kubota"},
		},
	}
	handler := newSearchHandler(repo)

	req := httptest.NewRequest("GET", "/api/search/analyze?q=kubota+tractor", nil)
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var intent entities.ParsedIntent
	require.NoError(t, json.NewDecoder(w.Body).Decode(&intent))
	require.NotNil(t, intent.MachineType)
	require.NotNil(t, intent.Manufacturer)
	assert.Equal(t, 50, intent.Confidence)
}

func TestAnalyze_RequiresQuery(t *testing.T) {
	handler := newSearchHandler(&stubTaxonomyRepo{})

	req := httptest.NewRequest("GET", "/api/search/analyze", nil)
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
