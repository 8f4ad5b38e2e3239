package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/machparts/partsearch/internal/adapters/database"
	"github.com/machparts/partsearch/internal/application/services"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheInvalidation_DropsSnapshotsOnTaxonomyEvent(t *testing.T) {
	cache := newStubCache()
	for _, key := range database.TaxonomyCacheKeys {
		_ = cache.Set(context.Background(), key, []byte("[]"), 600)
	}
	bus := newStubEventBus()

	service := services.NewCacheInvalidationService(cache, bus)
	require.NoError(t, service.Start())
	defer service.Stop()

	err := bus.Publish(context.Background(), "taxonomy:updates", &entities.TaxonomyEvent{
		ID:         "evt-1",
		Type:       entities.TaxonomyUpdated,
		EntityKind: "manufacturer",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(cache.deletedKeys()) >= len(database.TaxonomyCacheKeys)
	}, 2*time.Second, 10*time.Millisecond)

	for _, key := range database.TaxonomyCacheKeys {
		exists, _ := cache.Exists(context.Background(), key)
		assert.False(t, exists, "expected %s to be dropped", key)
	}
}

func TestCacheInvalidation_ManualInvalidation(t *testing.T) {
	cache := newStubCache()
	_ = cache.Set(context.Background(), database.MachineTypesCacheKey, []byte("[]"), 600)

	service := services.NewCacheInvalidationService(cache, newStubEventBus())

	err := service.InvalidateTaxonomySnapshots(context.Background())

	require.NoError(t, err)
	exists, _ := cache.Exists(context.Background(), database.MachineTypesCacheKey)
	assert.False(t, exists)
}
