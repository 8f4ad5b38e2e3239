package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	tsclient "github.com/machparts/partsearch/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

// TypesenseAdapter implements step-scoped autocomplete over a single
// taxonomy candidates collection.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements AutocompleteIndexRepository
var _ repositories.AutocompleteIndexRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(tsclient.TaxonomyCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: tsclient.TaxonomyCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "step", Type: "int32", Facet: pointer.True()},
			// Sortable so the query-time name tiebreak is accepted.
			{Name: "name", Type: "string", Sort: pointer.True()},
			{Name: "localized_name", Type: "string", Optional: pointer.True()},
			{Name: "search_terms", Type: "string[]"},
			{Name: "scope_id", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "popularity_score", Type: "float"},
		},
		DefaultSortingField: pointer.String("popularity_score"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// IndexCandidates upserts a batch of step-tagged candidates.
func (a *TypesenseAdapter) IndexCandidates(ctx context.Context, candidates []*entities.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(candidates))
	for _, c := range candidates {
		doc := map[string]interface{}{
			// Step-prefixed so IDs stay unique across dimensions.
			"id":               fmt.Sprintf("%d:%s", c.Step, c.ID),
			"step":             int(c.Step),
			"name":             c.Name,
			"search_terms":     BuildSearchTerms(c),
			"popularity_score": c.PopularityScore,
		}
		if c.LocalizedName != "" {
			doc["localized_name"] = c.LocalizedName
		}
		if c.ScopeID != "" {
			doc["scope_id"] = c.ScopeID
		}
		documents = append(documents, doc)
	}

	params := &api.ImportDocumentsParams{
		Action:    pointer.String(string(api.Upsert)),
		BatchSize: pointer.Int(len(documents)),
	}
	_, err := a.client.Client().Collection(tsclient.TaxonomyCollection).Documents().Import(ctx, documents, params)
	if err != nil {
		return fmt.Errorf("failed to index candidates: %w", err)
	}

	return nil
}

// Suggest searches candidates for a funnel step, ordered by popularity
// descending then name ascending.
func (a *TypesenseAdapter) Suggest(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error) {
	filters := []string{fmt.Sprintf("step:=%d", int(step))}
	if scopeID != "" {
		// Globally scoped candidates match under any scope.
		filters = append(filters, fmt.Sprintf("scope_id:=[%s,%s]", scopeID, entities.ScopeGlobal))
	}

	q := query
	if q == "" {
		q = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(q),
		QueryBy:  pointer.String("name,localized_name,search_terms"),
		FilterBy: pointer.String(strings.Join(filters, " && ")),
		SortBy:   pointer.String("popularity_score:desc,name:asc"),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.TaxonomyCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}

	candidates := []*entities.Candidate{}
	if result.Hits == nil {
		return candidates, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document

		candidate := &entities.Candidate{Step: step}
		if id, ok := doc["id"].(string); ok {
			// Strip the step prefix back off.
			if i := strings.IndexByte(id, ':'); i >= 0 {
				candidate.ID = id[i+1:]
			} else {
				candidate.ID = id
			}
		}
		if name, ok := doc["name"].(string); ok {
			candidate.Name = name
		}
		if localized, ok := doc["localized_name"].(string); ok {
			candidate.LocalizedName = localized
		}
		if popularity, ok := doc["popularity_score"].(float64); ok {
			candidate.PopularityScore = popularity
		}
		if scope, ok := doc["scope_id"].(string); ok {
			candidate.ScopeID = scope
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
