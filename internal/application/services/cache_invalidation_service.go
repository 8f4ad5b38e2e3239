package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/machparts/partsearch/internal/adapters/database"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/providers"
)

// CacheInvalidationService drops cached taxonomy snapshots when the
// external curation process publishes an update event. Without it,
// instances would serve stale suggestions until the snapshot TTL runs
// out.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for taxonomy events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelTaxonomyUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to taxonomy updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Println("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.TaxonomyEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.TaxonomyEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("Processing cache invalidation for event: %s (kind: %s)", event.ID, event.EntityKind)

	if err := s.InvalidateTaxonomySnapshots(ctx); err != nil {
		log.Printf("Warning: failed to invalidate taxonomy snapshots: %v", err)
	}
}

// InvalidateTaxonomySnapshots drops every cached taxonomy snapshot.
// The next read repopulates them from the store.
func (s *CacheInvalidationService) InvalidateTaxonomySnapshots(ctx context.Context) error {
	for _, key := range database.TaxonomyCacheKeys {
		if err := s.cache.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to invalidate %s: %w", key, err)
		}
	}
	log.Println("Invalidated taxonomy snapshot caches")
	return nil
}
