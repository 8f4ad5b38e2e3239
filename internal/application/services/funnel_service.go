package services

import (
	"context"
	"fmt"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/observability"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// DefaultSuggestLimit caps every autocomplete response.
const DefaultSuggestLimit = 10

// FunnelService drives the five-step guided search: machine type,
// manufacturer, model, symptom, category. It prefers the search index
// for suggestions and falls back to the taxonomy store when the index
// is unavailable.
type FunnelService struct {
	taxonomyRepo repositories.TaxonomyRepository
	indexRepo    repositories.AutocompleteIndexRepository
}

// NewFunnelService creates a new funnel service. indexRepo may be nil;
// suggestions then come straight from the taxonomy store.
func NewFunnelService(taxonomyRepo repositories.TaxonomyRepository, indexRepo repositories.AutocompleteIndexRepository) *FunnelService {
	return &FunnelService{
		taxonomyRepo: taxonomyRepo,
		indexRepo:    indexRepo,
	}
}

// Autocomplete returns candidates for one funnel step. Steps two and
// three narrow by scopeID (machine type, manufacturer); the other
// steps ignore it. An empty query lists the most popular candidates.
func (s *FunnelService) Autocomplete(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error) {
	if !step.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid funnel step: %d", step))
	}

	if limit <= 0 || limit > DefaultSuggestLimit {
		limit = DefaultSuggestLimit
	}

	if step != entities.StepManufacturer && step != entities.StepModel {
		scopeID = ""
	}

	if s.indexRepo != nil {
		candidates, err := s.indexRepo.Suggest(ctx, step, query, scopeID, limit)
		if err == nil {
			return candidates, nil
		}
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Str("step", step.String()).Msg("autocomplete index unavailable, falling back to store")
	}

	return s.taxonomyRepo.Suggest(ctx, step, query, scopeID, limit)
}
