package services

import (
	"context"
	"fmt"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/observability"
)

// TaxonomyIndexingService rebuilds the autocomplete search index from
// the taxonomy store. The indexer binary runs it on a schedule; the
// API never calls it on the request path.
type TaxonomyIndexingService struct {
	taxonomyRepo repositories.TaxonomyRepository
	indexRepo    repositories.AutocompleteIndexRepository
}

// NewTaxonomyIndexingService creates a new taxonomy indexing service
func NewTaxonomyIndexingService(taxonomyRepo repositories.TaxonomyRepository, indexRepo repositories.AutocompleteIndexRepository) *TaxonomyIndexingService {
	return &TaxonomyIndexingService{
		taxonomyRepo: taxonomyRepo,
		indexRepo:    indexRepo,
	}
}

// Reindex ensures the collection exists and upserts every funnel
// dimension as step-tagged candidates. Returns the number of
// candidates indexed.
func (s *TaxonomyIndexingService) Reindex(ctx context.Context) (int, error) {
	logger := observability.LoggerFromContext(ctx)

	if err := s.indexRepo.InitSchema(ctx); err != nil {
		return 0, fmt.Errorf("failed to init index schema: %w", err)
	}

	candidates, err := s.collectCandidates(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.indexRepo.IndexCandidates(ctx, candidates); err != nil {
		return 0, fmt.Errorf("failed to index candidates: %w", err)
	}

	logger.Info().Int("candidates", len(candidates)).Msg("taxonomy reindex complete")
	return len(candidates), nil
}

func (s *TaxonomyIndexingService) collectCandidates(ctx context.Context) ([]*entities.Candidate, error) {
	var candidates []*entities.Candidate

	machineTypes, err := s.taxonomyRepo.ListMachineTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machine types: %w", err)
	}
	for _, mt := range machineTypes {
		candidates = append(candidates, &entities.Candidate{
			ID:              mt.ID,
			Name:            mt.Name,
			LocalizedName:   mt.LocalizedName,
			PopularityScore: mt.PopularityScore,
			Step:            entities.StepMachineType,
		})
	}

	manufacturers, err := s.taxonomyRepo.ListManufacturers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	for _, m := range manufacturers {
		scope := entities.ScopeGlobal
		if m.MachineTypeID != nil {
			scope = *m.MachineTypeID
		}
		candidates = append(candidates, &entities.Candidate{
			ID:              m.ID,
			Name:            m.Name,
			PopularityScore: m.PopularityScore,
			Step:            entities.StepManufacturer,
			ScopeID:         scope,
		})
	}

	models, err := s.taxonomyRepo.ListMachineModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machine models: %w", err)
	}
	for _, m := range models {
		candidates = append(candidates, &entities.Candidate{
			ID:              m.ID,
			Name:            m.Name,
			PopularityScore: m.PopularityScore,
			Step:            entities.StepModel,
			ScopeID:         m.ManufacturerID,
		})
	}

	symptoms, err := s.taxonomyRepo.ListSymptomMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptom mappings: %w", err)
	}
	for _, sym := range symptoms {
		candidates = append(candidates, &entities.Candidate{
			ID:              sym.ID,
			Name:            sym.SymptomText,
			LocalizedName:   sym.LocalizedText,
			PopularityScore: sym.ConfidenceScore,
			Step:            entities.StepSymptom,
		})
	}

	categories, err := s.taxonomyRepo.ListRootCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list root categories: %w", err)
	}
	for _, c := range categories {
		candidates = append(candidates, &entities.Candidate{
			ID:            c.ID,
			Name:          c.Name,
			LocalizedName: c.LocalizedName,
			Step:          entities.StepCategory,
		})
	}

	return candidates, nil
}
