package repositories

import (
	"context"

	"github.com/machparts/partsearch/internal/domain/entities"
)

// SavedSearchRepository persists customer-owned saved searches.
// Unlike analytics, writes here are synchronous and failures surface
// to the caller.
type SavedSearchRepository interface {
	Create(ctx context.Context, search *entities.SavedSearch) error
	Delete(ctx context.Context, customerID, id string) error
	ListByCustomer(ctx context.Context, customerID string) ([]*entities.SavedSearch, error)
}
