package services

import (
	"context"
	"fmt"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// MaxSuggestedParts caps a parts listing for one model.
const MaxSuggestedParts = 50

// CompatibilityService answers fitment questions from the curated
// compatibility matrix and lists the parts that fit a model.
type CompatibilityService struct {
	compatibilityRepo repositories.CompatibilityRepository
	analytics         *SearchAnalyticsService
}

// NewCompatibilityService creates a new compatibility service.
// analytics may be nil; part listings then go unrecorded.
func NewCompatibilityService(compatibilityRepo repositories.CompatibilityRepository, analytics *SearchAnalyticsService) *CompatibilityService {
	return &CompatibilityService{
		compatibilityRepo: compatibilityRepo,
		analytics:         analytics,
	}
}

// Check returns the verdict for one (model, part) pair. An absent
// matrix row is an answer, not an error: the weakest verdict, telling
// the customer nothing is known about the pairing.
func (s *CompatibilityService) Check(ctx context.Context, modelID, partID string) (*entities.Verdict, error) {
	if modelID == "" {
		return nil, apperrors.NewValidationError("model id is required")
	}
	if partID == "" {
		return nil, apperrors.NewValidationError("part id is required")
	}

	entry, err := s.compatibilityRepo.GetEntry(ctx, modelID, partID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &entities.Verdict{
				Compatible: false,
				Level:      entities.LevelNotCompatible,
				Confidence: 0,
				Reason:     "No compatibility data for this part and model.",
			}, nil
		}
		return nil, err
	}

	return &entities.Verdict{
		Compatible: entry.Level.Fits(),
		Level:      entry.Level,
		Confidence: entry.ConfidenceScore,
		IsOriginal: entry.IsOriginal,
		Reason:     verdictReason(entry),
	}, nil
}

func verdictReason(entry *entities.CompatibilityEntry) string {
	switch entry.Level {
	case entities.LevelPerfect:
		return fmt.Sprintf("Perfect fit for this model (%d%% confidence).", entry.ConfidenceScore)
	case entities.LevelCompatible:
		return fmt.Sprintf("Compatible with this model (%d%% confidence).", entry.ConfidenceScore)
	case entities.LevelCheckSpecs:
		return fmt.Sprintf("Possibly compatible - check machine specs (%d%% confidence).", entry.ConfidenceScore)
	}
	return "Not compatible with this model."
}

// SuggestParts lists parts that fit a model, best matches first,
// optionally narrowed to a category. The listing is recorded as a
// search execution for assortment analytics; recording never blocks
// or fails the response.
func (s *CompatibilityService) SuggestParts(ctx context.Context, modelID, categoryID, sessionID string) ([]*entities.CompatiblePart, error) {
	if modelID == "" {
		return nil, apperrors.NewValidationError("model id is required")
	}

	parts, err := s.compatibilityRepo.ListCompatibleParts(ctx, modelID, categoryID, MaxSuggestedParts)
	if err != nil {
		return nil, err
	}

	if s.analytics != nil {
		event := &entities.SearchEvent{
			Action:         entities.ActionSearchExecuted,
			MachineModelID: &modelID,
			ResultsCount:   len(parts),
			SessionID:      sessionID,
		}
		if categoryID != "" {
			event.CategoryID = &categoryID
		}
		s.analytics.Track(ctx, event)
	}

	return parts, nil
}
