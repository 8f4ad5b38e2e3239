package database

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machparts/partsearch/internal/domain/entities"
)

type fakeTaxonomyRepo struct {
	machineTypes []*entities.MachineType
	listCalls    int
	err          error
}

func (f *fakeTaxonomyRepo) Suggest(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error) {
	return nil, nil
}

func (f *fakeTaxonomyRepo) ListMachineTypes(ctx context.Context) ([]*entities.MachineType, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.machineTypes, nil
}

func (f *fakeTaxonomyRepo) ListManufacturers(ctx context.Context) ([]*entities.Manufacturer, error) {
	return nil, nil
}

func (f *fakeTaxonomyRepo) ListSymptomMappings(ctx context.Context) ([]*entities.SymptomMapping, error) {
	return nil, nil
}

func (f *fakeTaxonomyRepo) ListMachineModels(ctx context.Context) ([]*entities.MachineModel, error) {
	return nil, nil
}

func (f *fakeTaxonomyRepo) ListRootCategories(ctx context.Context) ([]*entities.PartCategory, error) {
	return nil, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.store[key]; ok {
		return value, nil
	}
	return nil, errors.New("key not found")
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

func TestCachedTaxonomyAdapter_MissFetchesAndPopulates(t *testing.T) {
	repo := &fakeTaxonomyRepo{
		machineTypes: []*entities.MachineType{
			{ID: "mt-1", Name: "Tractor", PopularityScore: 0.9},
		},
	}
	cache := newFakeCache()
	adapter := NewCachedTaxonomyAdapter(repo, cache)

	got, err := adapter.ListMachineTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tractor", got[0].Name)
	assert.Equal(t, 1, repo.listCalls)

	// Cache population is async
	assert.Eventually(t, func() bool {
		return cache.has(MachineTypesCacheKey)
	}, time.Second, 10*time.Millisecond)
}

func TestCachedTaxonomyAdapter_HitSkipsStore(t *testing.T) {
	repo := &fakeTaxonomyRepo{}
	cache := newFakeCache()

	cached := []*entities.MachineType{{ID: "mt-2", Name: "Excavator"}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), MachineTypesCacheKey, data, 600))

	adapter := NewCachedTaxonomyAdapter(repo, cache)

	got, err := adapter.ListMachineTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Excavator", got[0].Name)
	assert.Equal(t, 0, repo.listCalls)
}

func TestCachedTaxonomyAdapter_CorruptEntryFallsBackToStore(t *testing.T) {
	repo := &fakeTaxonomyRepo{
		machineTypes: []*entities.MachineType{{ID: "mt-1", Name: "Tractor"}},
	}
	cache := newFakeCache()
	require.NoError(t, cache.Set(context.Background(), MachineTypesCacheKey, []byte("{not json"), 600))

	adapter := NewCachedTaxonomyAdapter(repo, cache)

	got, err := adapter.ListMachineTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCachedTaxonomyAdapter_StoreErrorPropagates(t *testing.T) {
	repo := &fakeTaxonomyRepo{err: errors.New("connection refused")}
	adapter := NewCachedTaxonomyAdapter(repo, newFakeCache())

	_, err := adapter.ListMachineTypes(context.Background())
	assert.Error(t, err)
}
