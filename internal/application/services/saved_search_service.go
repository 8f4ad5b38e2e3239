package services

import (
	"context"
	"encoding/json"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// SavedSearchService manages customer-owned saved searches. Unlike the
// analytics sink, every operation here is synchronous and failures
// surface to the caller.
type SavedSearchService struct {
	repo repositories.SavedSearchRepository
}

// NewSavedSearchService creates a new saved search service
func NewSavedSearchService(repo repositories.SavedSearchRepository) *SavedSearchService {
	return &SavedSearchService{repo: repo}
}

// Save persists a search snapshot for a customer and returns it with
// its assigned ID.
func (s *SavedSearchService) Save(ctx context.Context, customerID, name string, query json.RawMessage) (*entities.SavedSearch, error) {
	if customerID == "" {
		return nil, apperrors.NewValidationError("customer id is required")
	}
	if len(query) == 0 || !json.Valid(query) {
		return nil, apperrors.NewValidationError("query must be a valid JSON document")
	}

	search := &entities.SavedSearch{
		CustomerID: customerID,
		Name:       name,
		Query:      query,
	}
	if err := s.repo.Create(ctx, search); err != nil {
		return nil, err
	}

	return search, nil
}

// Delete removes a saved search owned by the customer.
func (s *SavedSearchService) Delete(ctx context.Context, customerID, id string) error {
	if customerID == "" {
		return apperrors.NewValidationError("customer id is required")
	}
	if id == "" {
		return apperrors.NewValidationError("saved search id is required")
	}
	return s.repo.Delete(ctx, customerID, id)
}

// List returns a customer's saved searches, newest first.
func (s *SavedSearchService) List(ctx context.Context, customerID string) ([]*entities.SavedSearch, error) {
	if customerID == "" {
		return nil, apperrors.NewValidationError("customer id is required")
	}
	return s.repo.ListByCustomer(ctx, customerID)
}
