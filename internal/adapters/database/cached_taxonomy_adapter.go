package database

import (
	"context"
	"encoding/json"
	"log"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/providers"
	"github.com/machparts/partsearch/internal/domain/repositories"
)

// CachedTaxonomyAdapter wraps a TaxonomyRepository with caching for
// the full-dimension list reads. Suggest goes straight through: it is
// query-shaped and already served by the search index in front of it.
type CachedTaxonomyAdapter struct {
	adapter repositories.TaxonomyRepository
	cache   providers.CacheProvider
}

// NewCachedTaxonomyAdapter creates a new cached taxonomy adapter
func NewCachedTaxonomyAdapter(adapter repositories.TaxonomyRepository, cache providers.CacheProvider) *CachedTaxonomyAdapter {
	return &CachedTaxonomyAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// taxonomySnapshotTTL is generous because taxonomy changes rarely and
// the event bus invalidates snapshots when it does.
const taxonomySnapshotTTL = 600 // 10 minutes

// Cache keys for taxonomy snapshots, shared with the invalidation side.
const (
	MachineTypesCacheKey    = "taxonomy:machine_types"
	ManufacturersCacheKey   = "taxonomy:manufacturers"
	SymptomMappingsCacheKey = "taxonomy:symptom_mappings"
	MachineModelsCacheKey   = "taxonomy:machine_models"
	RootCategoriesCacheKey  = "taxonomy:root_categories"
)

// TaxonomyCacheKeys lists every snapshot key, for invalidation.
var TaxonomyCacheKeys = []string{
	MachineTypesCacheKey,
	ManufacturersCacheKey,
	SymptomMappingsCacheKey,
	MachineModelsCacheKey,
	RootCategoriesCacheKey,
}

// Suggest delegates to the underlying adapter without caching.
func (a *CachedTaxonomyAdapter) Suggest(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error) {
	return a.adapter.Suggest(ctx, step, query, scopeID, limit)
}

// ListMachineTypes retrieves machine types with caching
func (a *CachedTaxonomyAdapter) ListMachineTypes(ctx context.Context) ([]*entities.MachineType, error) {
	return cachedList(ctx, a.cache, MachineTypesCacheKey, a.adapter.ListMachineTypes)
}

// ListManufacturers retrieves manufacturers with caching
func (a *CachedTaxonomyAdapter) ListManufacturers(ctx context.Context) ([]*entities.Manufacturer, error) {
	return cachedList(ctx, a.cache, ManufacturersCacheKey, a.adapter.ListManufacturers)
}

// ListSymptomMappings retrieves symptom mappings with caching
func (a *CachedTaxonomyAdapter) ListSymptomMappings(ctx context.Context) ([]*entities.SymptomMapping, error) {
	return cachedList(ctx, a.cache, SymptomMappingsCacheKey, a.adapter.ListSymptomMappings)
}

// ListMachineModels retrieves machine models with caching
func (a *CachedTaxonomyAdapter) ListMachineModels(ctx context.Context) ([]*entities.MachineModel, error) {
	return cachedList(ctx, a.cache, MachineModelsCacheKey, a.adapter.ListMachineModels)
}

// ListRootCategories retrieves root categories with caching
func (a *CachedTaxonomyAdapter) ListRootCategories(ctx context.Context) ([]*entities.PartCategory, error) {
	return cachedList(ctx, a.cache, RootCategoriesCacheKey, a.adapter.ListRootCategories)
}

func cachedList[T any](ctx context.Context, cache providers.CacheProvider, cacheKey string, fetch func(context.Context) ([]*T, error)) ([]*T, error) {
	// Try to get from cache first
	if cached, err := cache.Get(ctx, cacheKey); err == nil {
		var items []*T
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		log.Printf("Failed to unmarshal cached %s: %v", cacheKey, err)
	}

	// Cache miss - fetch from database
	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(items); err == nil {
			if err := cache.Set(bgCtx, cacheKey, data, taxonomySnapshotTTL); err != nil {
				log.Printf("Failed to cache %s: %v", cacheKey, err)
			}
		}
	}()

	return items, nil
}
