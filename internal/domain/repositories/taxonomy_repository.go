package repositories

import (
	"context"

	"github.com/machparts/partsearch/internal/domain/entities"
)

// TaxonomyRepository defines read access to the taxonomy store:
// machine types, manufacturers, models, symptoms and part categories.
// The taxonomy is curated externally; this engine never writes it.
type TaxonomyRepository interface {
	// Suggest returns up to limit autocomplete candidates for a funnel
	// step, ordered by popularity descending then name ascending. An
	// empty query matches everything. scopeID narrows manufacturers by
	// machine type (step 2) and models by manufacturer (step 3).
	Suggest(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error)

	// ListMachineTypes returns the full machine type dimension.
	ListMachineTypes(ctx context.Context) ([]*entities.MachineType, error)

	// ListManufacturers returns the full manufacturer dimension.
	ListManufacturers(ctx context.Context) ([]*entities.Manufacturer, error)

	// ListSymptomMappings returns the full symptom vocabulary.
	ListSymptomMappings(ctx context.Context) ([]*entities.SymptomMapping, error)

	// ListMachineModels returns all machine models.
	ListMachineModels(ctx context.Context) ([]*entities.MachineModel, error)

	// ListRootCategories returns part categories with no parent.
	ListRootCategories(ctx context.Context) ([]*entities.PartCategory, error)
}

// AutocompleteIndexRepository defines the search-index flavor of
// step-scoped autocomplete (e.g. Typesense), plus the indexing side
// used by the reindexer.
type AutocompleteIndexRepository interface {
	Suggest(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error)

	// IndexCandidates upserts a batch of step-tagged candidates.
	IndexCandidates(ctx context.Context, candidates []*entities.Candidate) error

	// InitSchema ensures the collection exists.
	InitSchema(ctx context.Context) error
}
