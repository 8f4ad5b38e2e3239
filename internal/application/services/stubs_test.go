package services_test

import (
	"context"
	"errors"
	"sync"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
)

var errCacheMiss = errors.New("key not found")

type stubTaxonomyRepo struct {
	machineTypes  []*entities.MachineType
	manufacturers []*entities.Manufacturer
	symptoms      []*entities.SymptomMapping
	models        []*entities.MachineModel
	categories    []*entities.PartCategory
	candidates    []*entities.Candidate
	err           error

	suggestCalls int
	lastStep     entities.FunnelStep
	lastScopeID  string
	lastLimit    int
}

func (s *stubTaxonomyRepo) Suggest(_ context.Context, step entities.FunnelStep, _, scopeID string, limit int) ([]*entities.Candidate, error) {
	s.suggestCalls++
	s.lastStep = step
	s.lastScopeID = scopeID
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func (s *stubTaxonomyRepo) ListMachineTypes(context.Context) ([]*entities.MachineType, error) {
	return s.machineTypes, s.err
}

func (s *stubTaxonomyRepo) ListManufacturers(context.Context) ([]*entities.Manufacturer, error) {
	return s.manufacturers, s.err
}

func (s *stubTaxonomyRepo) ListSymptomMappings(context.Context) ([]*entities.SymptomMapping, error) {
	return s.symptoms, s.err
}

func (s *stubTaxonomyRepo) ListMachineModels(context.Context) ([]*entities.MachineModel, error) {
	return s.models, s.err
}

func (s *stubTaxonomyRepo) ListRootCategories(context.Context) ([]*entities.PartCategory, error) {
	return s.categories, s.err
}

type stubIndexRepo struct {
	candidates []*entities.Candidate
	indexed    []*entities.Candidate
	suggestErr error
	indexErr   error
	schemaErr  error

	suggestCalls int
}

func (s *stubIndexRepo) Suggest(_ context.Context, step entities.FunnelStep, _, _ string, _ int) ([]*entities.Candidate, error) {
	s.suggestCalls++
	if s.suggestErr != nil {
		return nil, s.suggestErr
	}
	return s.candidates, nil
}

func (s *stubIndexRepo) IndexCandidates(_ context.Context, candidates []*entities.Candidate) error {
	if s.indexErr != nil {
		return s.indexErr
	}
	s.indexed = append(s.indexed, candidates...)
	return nil
}

func (s *stubIndexRepo) InitSchema(context.Context) error {
	return s.schemaErr
}

type stubCompatibilityRepo struct {
	entry    *entities.CompatibilityEntry
	entryErr error
	parts    []*entities.CompatiblePart
	listErr  error

	lastModelID    string
	lastCategoryID string
	lastLimit      int
}

func (s *stubCompatibilityRepo) GetEntry(_ context.Context, modelID, partID string) (*entities.CompatibilityEntry, error) {
	if s.entryErr != nil {
		return nil, s.entryErr
	}
	return s.entry, nil
}

func (s *stubCompatibilityRepo) ListCompatibleParts(_ context.Context, modelID, categoryID string, limit int) ([]*entities.CompatiblePart, error) {
	s.lastModelID = modelID
	s.lastCategoryID = categoryID
	s.lastLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.parts, nil
}

type stubRecommendationRepo struct {
	byKind map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether
	err    error

	calls []entities.AnchorKind
}

func (s *stubRecommendationRepo) ListByAnchor(_ context.Context, _ string, kind entities.AnchorKind, _ int) ([]*entities.FrequentlyBoughtTogether, error) {
	s.calls = append(s.calls, kind)
	if s.err != nil {
		return nil, s.err
	}
	return s.byKind[kind], nil
}

type stubPartRepo struct {
	parts []*entities.Part
	err   error
}

func (s *stubPartRepo) GetByIDs(context.Context, []string) ([]*entities.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.parts, nil
}

// stubAnalyticsRepo records logged events and lets tests wait for the
// background write to land.
type stubAnalyticsRepo struct {
	mu     sync.Mutex
	events []*entities.SearchEvent
	logErr error
	done   chan struct{}

	zeroResults []*repositories.ZeroResultQuery
	lastLimit   int
}

func newStubAnalyticsRepo() *stubAnalyticsRepo {
	return &stubAnalyticsRepo{done: make(chan struct{}, 16)}
}

func (s *stubAnalyticsRepo) LogEvent(_ context.Context, event *entities.SearchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.done <- struct{}{} }()
	if s.logErr != nil {
		return s.logErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubAnalyticsRepo) GetZeroResultQueries(_ context.Context, limit int) ([]*repositories.ZeroResultQuery, error) {
	s.lastLimit = limit
	return s.zeroResults, nil
}

func (s *stubAnalyticsRepo) loggedEvents() []*entities.SearchEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entities.SearchEvent{}, s.events...)
}

type stubSavedSearchRepo struct {
	created []*entities.SavedSearch
	listed  []*entities.SavedSearch
	err     error

	deletedCustomerID string
	deletedID         string
}

func (s *stubSavedSearchRepo) Create(_ context.Context, search *entities.SavedSearch) error {
	if s.err != nil {
		return s.err
	}
	if search.ID == "" {
		search.ID = "generated-id"
	}
	s.created = append(s.created, search)
	return nil
}

func (s *stubSavedSearchRepo) Delete(_ context.Context, customerID, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deletedCustomerID = customerID
	s.deletedID = id
	return nil
}

func (s *stubSavedSearchRepo) ListByCustomer(context.Context, string) ([]*entities.SavedSearch, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listed, nil
}

type stubCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.store[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (c *stubCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *stubCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

func (c *stubCache) deletedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.deleted...)
}

type stubEventBus struct {
	events chan *entities.TaxonomyEvent
}

func newStubEventBus() *stubEventBus {
	return &stubEventBus{events: make(chan *entities.TaxonomyEvent, 16)}
}

func (b *stubEventBus) Publish(_ context.Context, _ string, event *entities.TaxonomyEvent) error {
	b.events <- event
	return nil
}

func (b *stubEventBus) Subscribe(context.Context, string) (<-chan *entities.TaxonomyEvent, error) {
	return b.events, nil
}

func (b *stubEventBus) Unsubscribe(context.Context, string) error { return nil }

func (b *stubEventBus) Close() error { return nil }
