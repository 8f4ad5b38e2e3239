package handlers_test

import (
	"context"
	"sync"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
)

type stubTaxonomyRepo struct {
	machineTypes  []*entities.MachineType
	manufacturers []*entities.Manufacturer
	symptoms      []*entities.SymptomMapping
	candidates    []*entities.Candidate
	err           error
}

func (s *stubTaxonomyRepo) Suggest(context.Context, entities.FunnelStep, string, string, int) ([]*entities.Candidate, error) {
	return s.candidates, s.err
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
	return nil, s.err
}

func (s *stubTaxonomyRepo) ListRootCategories(context.Context) ([]*entities.PartCategory, error) {
	return nil, s.err
}

type stubCompatibilityRepo struct {
	entry    *entities.CompatibilityEntry
	entryErr error
	parts    []*entities.CompatiblePart
	listErr  error
}

func (s *stubCompatibilityRepo) GetEntry(context.Context, string, string) (*entities.CompatibilityEntry, error) {
	if s.entryErr != nil {
		return nil, s.entryErr
	}
	return s.entry, nil
}

func (s *stubCompatibilityRepo) ListCompatibleParts(context.Context, string, string, int) ([]*entities.CompatiblePart, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.parts, nil
}

type stubRecommendationRepo struct {
	byKind map[entities.AnchorKind][]*entities.FrequentlyBoughtTogether
	err    error
}

func (s *stubRecommendationRepo) ListByAnchor(_ context.Context, _ string, kind entities.AnchorKind, _ int) ([]*entities.FrequentlyBoughtTogether, error) {
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
	return s.parts, s.err
}

type stubAnalyticsRepo struct {
	mu          sync.Mutex
	events      []*entities.SearchEvent
	done        chan struct{}
	zeroResults []*repositories.ZeroResultQuery
	err         error
}

func newStubAnalyticsRepo() *stubAnalyticsRepo {
	return &stubAnalyticsRepo{done: make(chan struct{}, 16)}
}

func (s *stubAnalyticsRepo) LogEvent(_ context.Context, event *entities.SearchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.done <- struct{}{} }()
	s.events = append(s.events, event)
	return nil
}

func (s *stubAnalyticsRepo) GetZeroResultQueries(context.Context, int) ([]*repositories.ZeroResultQuery, error) {
	return s.zeroResults, s.err
}

func (s *stubAnalyticsRepo) loggedEvents() []*entities.SearchEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entities.SearchEvent{}, s.events...)
}

type stubSavedSearchRepo struct {
	created   []*entities.SavedSearch
	listed    []*entities.SavedSearch
	deleteErr error
	err       error
}

func (s *stubSavedSearchRepo) Create(_ context.Context, search *entities.SavedSearch) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, search)
	return nil
}

func (s *stubSavedSearchRepo) Delete(context.Context, string, string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.err
}

func (s *stubSavedSearchRepo) ListByCustomer(context.Context, string) ([]*entities.SavedSearch, error) {
	return s.listed, s.err
}
