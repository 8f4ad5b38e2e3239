package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/machparts/partsearch/internal/application/loaders"
	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
	apperrors "github.com/machparts/partsearch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationFixture(partRepo *stubPartRepo, recRepo *stubRecommendationRepo) *services.RecommendationService {
	return services.NewRecommendationService(recRepo, loaders.NewLoaders(partRepo))
}

func TestRecommendations_RankedWithTemplatedReason(t *testing.T) {
	recRepo := &stubRecommendationRepo{
		byKind: map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether{
			entities.AnchorPart: {
				{AnchorID: "p-1", AnchorKind: entities.AnchorPart, RelatedID: "p-2", FrequencyScore: 62},
				{AnchorID: "p-1", AnchorKind: entities.AnchorPart, RelatedID: "p-3", FrequencyScore: 34.8},
			},
		},
	}
	partRepo := &stubPartRepo{
		parts: []*entities.Part{
			{ID: "p-2", Name: "Oil Filter", IsActive: true},
			{ID: "p-3", Name: "Air Filter", IsActive: true},
		},
	}
	service := recommendationFixture(partRepo, recRepo)

	recs, err := service.GetRecommendations(context.Background(), "p-1", entities.AnchorPart)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "p-2", recs[0].Part.ID)
	assert.Equal(t, "62% of customers also buy this.", recs[0].Reason)
	assert.Equal(t, "p-3", recs[1].Part.ID)
	assert.Equal(t, "35% of customers also buy this.", recs[1].Reason)
}

func TestRecommendations_PartAnchorTakesPrecedence(t *testing.T) {
	recRepo := &stubRecommendationRepo{
		byKind: map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether{
			entities.AnchorPart: {
				{AnchorID: "x-1", AnchorKind: entities.AnchorPart, RelatedID: "p-2", FrequencyScore: 50},
			},
			entities.AnchorModel: {
				{AnchorID: "x-1", AnchorKind: entities.AnchorModel, RelatedID: "p-9", FrequencyScore: 90},
			},
		},
	}
	partRepo := &stubPartRepo{parts: []*entities.Part{{ID: "p-2", IsActive: true}}}
	service := recommendationFixture(partRepo, recRepo)

	recs, err := service.GetRecommendations(context.Background(), "x-1", "")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "p-2", recs[0].Part.ID)
	assert.Equal(t, []entities.AnchorKind{entities.AnchorPart}, recRepo.calls)
}

func TestRecommendations_FallsBackToModelAnchor(t *testing.T) {
	recRepo := &stubRecommendationRepo{
		byKind: map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether{
			entities.AnchorModel: {
				{AnchorID: "mm-1", AnchorKind: entities.AnchorModel, RelatedID: "p-9", FrequencyScore: 40},
			},
		},
	}
	partRepo := &stubPartRepo{parts: []*entities.Part{{ID: "p-9", IsActive: true}}}
	service := recommendationFixture(partRepo, recRepo)

	recs, err := service.GetRecommendations(context.Background(), "mm-1", "")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "p-9", recs[0].Part.ID)
	assert.Equal(t, []entities.AnchorKind{entities.AnchorPart, entities.AnchorModel}, recRepo.calls)
}

func TestRecommendations_DropsMissingAndInactiveParts(t *testing.T) {
	recRepo := &stubRecommendationRepo{
		byKind: map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether{
			entities.AnchorPart: {
				{RelatedID: "p-2", FrequencyScore: 60},
				{RelatedID: "p-gone", FrequencyScore: 50},
				{RelatedID: "p-inactive", FrequencyScore: 40},
			},
		},
	}
	partRepo := &stubPartRepo{
		parts: []*entities.Part{
			{ID: "p-2", IsActive: true},
			{ID: "p-inactive", IsActive: false},
		},
	}
	service := recommendationFixture(partRepo, recRepo)

	recs, err := service.GetRecommendations(context.Background(), "p-1", entities.AnchorPart)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "p-2", recs[0].Part.ID)
}

func TestRecommendations_EmptyForUnknownAnchor(t *testing.T) {
	recRepo := &stubRecommendationRepo{byKind: map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether{}}
	service := recommendationFixture(&stubPartRepo{}, recRepo)

	recs, err := service.GetRecommendations(context.Background(), "nope", entities.AnchorPart)

	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendations_ValidatesInput(t *testing.T) {
	service := recommendationFixture(&stubPartRepo{}, &stubRecommendationRepo{})

	_, err := service.GetRecommendations(context.Background(), "", entities.AnchorPart)
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.GetRecommendations(context.Background(), "p-1", entities.AnchorKind("bogus"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestRecommendations_RepositoryErrorPropagates(t *testing.T) {
	recRepo := &stubRecommendationRepo{err: errors.New("db down")}
	service := recommendationFixture(&stubPartRepo{}, recRepo)

	_, err := service.GetRecommendations(context.Background(), "p-1", entities.AnchorPart)

	assert.Error(t, err)
}
