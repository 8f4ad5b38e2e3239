package services

import (
	"context"
	"fmt"
	"math"

	"github.com/machparts/partsearch/internal/application/loaders"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// MaxRecommendations caps a frequently-bought-together response.
const MaxRecommendations = 10

// RecommendationService surfaces co-purchase suggestions for a part or
// machine model anchor.
type RecommendationService struct {
	recommendationRepo repositories.RecommendationRepository
	loaders            *loaders.Loaders
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(recommendationRepo repositories.RecommendationRepository, partLoaders *loaders.Loaders) *RecommendationService {
	return &RecommendationService{
		recommendationRepo: recommendationRepo,
		loaders:            partLoaders,
	}
}

// GetRecommendations returns up to MaxRecommendations co-purchase
// suggestions, strongest first. When kind is empty the part anchor is
// tried first and the model anchor only when the part anchor has no
// rows. Related parts that no longer exist or are inactive drop out
// silently.
func (s *RecommendationService) GetRecommendations(ctx context.Context, anchorID string, kind entities.AnchorKind) ([]*entities.Recommendation, error) {
	if anchorID == "" {
		return nil, apperrors.NewValidationError("anchor id is required")
	}
	if kind != "" && !kind.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid anchor kind: %s", kind))
	}

	rows, err := s.listByAnchor(ctx, anchorID, kind)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*entities.Recommendation{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RelatedID)
	}

	parts, err := s.loaders.LoadParts(ctx, ids)
	if err != nil {
		return nil, err
	}

	partMap := make(map[string]*entities.Part, len(parts))
	for _, p := range parts {
		partMap[p.ID] = p
	}

	recommendations := make([]*entities.Recommendation, 0, len(rows))
	for _, row := range rows {
		part, ok := partMap[row.RelatedID]
		if !ok || !part.IsActive {
			continue
		}
		recommendations = append(recommendations, &entities.Recommendation{
			Part:           part,
			FrequencyScore: row.FrequencyScore,
			Reason:         recommendationReason(row.FrequencyScore),
		})
		if len(recommendations) == MaxRecommendations {
			break
		}
	}

	return recommendations, nil
}

func (s *RecommendationService) listByAnchor(ctx context.Context, anchorID string, kind entities.AnchorKind) ([]*entities.FrequentlyBoughtTogether, error) {
	if kind != "" {
		return s.recommendationRepo.ListByAnchor(ctx, anchorID, kind, MaxRecommendations)
	}

	// Part anchors take precedence over model anchors when the caller
	// leaves the kind open.
	rows, err := s.recommendationRepo.ListByAnchor(ctx, anchorID, entities.AnchorPart, MaxRecommendations)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}
	return s.recommendationRepo.ListByAnchor(ctx, anchorID, entities.AnchorModel, MaxRecommendations)
}

func recommendationReason(frequencyScore float64) string {
	// frequency_score is already a 0..100 percentage.
	percent := int(math.Round(frequencyScore))
	return fmt.Sprintf("%d%% of customers also buy this.", percent)
}
