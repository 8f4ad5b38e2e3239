package repositories

import (
	"context"

	"github.com/machparts/partsearch/internal/domain/entities"
)

// CompatibilityRepository defines read access to the compatibility
// matrix. Entries are curated externally and never mutated here.
type CompatibilityRepository interface {
	// GetEntry returns the single entry for (modelID, partID). A
	// missing row yields a NOT_FOUND error; callers translate that
	// into the weakest verdict, not a failure.
	GetEntry(ctx context.Context, modelID, partID string) (*entities.CompatibilityEntry, error)

	// ListCompatibleParts returns parts with level perfect or
	// compatible for the model, optionally filtered to a category,
	// ordered by confidence descending then originals first, capped
	// at limit.
	ListCompatibleParts(ctx context.Context, modelID, categoryID string, limit int) ([]*entities.CompatiblePart, error)
}
