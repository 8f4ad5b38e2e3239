package repositories

import (
	"context"

	"github.com/machparts/partsearch/internal/domain/entities"
)

// RecommendationRepository defines read access to the co-purchase
// relation.
type RecommendationRepository interface {
	// ListByAnchor returns co-purchase rows for the anchor, ordered by
	// frequency score descending, capped at limit.
	ListByAnchor(ctx context.Context, anchorID string, kind entities.AnchorKind, limit int) ([]*entities.FrequentlyBoughtTogether, error)
}

// PartRepository defines read access to the commerce store's parts.
type PartRepository interface {
	// GetByIDs returns the parts for the given ids. Unknown ids are
	// silently omitted.
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Part, error)
}
