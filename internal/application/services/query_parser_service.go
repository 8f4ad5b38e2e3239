package services

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
)

// Fixed confidence weights per resolved dimension. A query that hits
// all three dimensions tops out at 80, never 100: free text stays a
// shortcut into the funnel, not a substitute for finishing it.
const (
	machineTypeWeight  = 25
	manufacturerWeight = 25
	symptomWeight      = 30
	MaxParseConfidence = machineTypeWeight + manufacturerWeight + symptomWeight
)

var queryNoise = regexp.MustCompile(`[^\p{L}\p{N}\s\-'/]`)

// QueryParserService interprets free-text queries against the taxonomy:
// it resolves machine type, manufacturer and symptom mentions and
// scores how much of the funnel the query already answers.
type QueryParserService struct {
	taxonomyRepo repositories.TaxonomyRepository
}

// NewQueryParserService creates a new query parser service
func NewQueryParserService(taxonomyRepo repositories.TaxonomyRepository) *QueryParserService {
	return &QueryParserService{taxonomyRepo: taxonomyRepo}
}

// Parse resolves a free-text query into structured intent. Matching is
// case-folded substring containment in both directions, so "deere
// starter" finds the manufacturer "John Deere" and "john deere usa"
// still finds it too. Dimensions resolve concurrently; any repository
// failure fails the parse.
func (s *QueryParserService) Parse(ctx context.Context, query string) (*entities.ParsedIntent, error) {
	intent := &entities.ParsedIntent{}

	normalized := normalizeQuery(query)
	if normalized == "" {
		return intent, nil
	}

	var (
		wg           sync.WaitGroup
		machineType  *entities.MachineType
		manufacturer *entities.Manufacturer
		symptom      *entities.SymptomMapping
		mtErr        error
		mfErr        error
		symErr       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		machineType, mtErr = s.matchMachineType(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		manufacturer, mfErr = s.matchManufacturer(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		symptom, symErr = s.matchSymptom(ctx, normalized)
	}()
	wg.Wait()

	if mtErr != nil {
		return nil, mtErr
	}
	if mfErr != nil {
		return nil, mfErr
	}
	if symErr != nil {
		return nil, symErr
	}

	if machineType != nil {
		intent.MachineType = machineType
		intent.Confidence += machineTypeWeight
	}
	if manufacturer != nil {
		intent.Manufacturer = manufacturer
		intent.Confidence += manufacturerWeight
	}
	if symptom != nil {
		intent.Symptom = symptom
		intent.Confidence += symptomWeight
	}

	return intent, nil
}

func (s *QueryParserService) matchMachineType(ctx context.Context, query string) (*entities.MachineType, error) {
	machineTypes, err := s.taxonomyRepo.ListMachineTypes(ctx)
	if err != nil {
		return nil, err
	}

	var best *entities.MachineType
	bestLen := 0
	for _, mt := range machineTypes {
		if n := matchLength(query, mt.Name, mt.LocalizedName); n > bestLen {
			best = mt
			bestLen = n
		}
	}
	return best, nil
}

func (s *QueryParserService) matchManufacturer(ctx context.Context, query string) (*entities.Manufacturer, error) {
	manufacturers, err := s.taxonomyRepo.ListManufacturers(ctx)
	if err != nil {
		return nil, err
	}

	var best *entities.Manufacturer
	bestLen := 0
	for _, m := range manufacturers {
		if n := matchLength(query, m.Name); n > bestLen {
			best = m
			bestLen = n
		}
	}
	return best, nil
}

func (s *QueryParserService) matchSymptom(ctx context.Context, query string) (*entities.SymptomMapping, error) {
	symptoms, err := s.taxonomyRepo.ListSymptomMappings(ctx)
	if err != nil {
		return nil, err
	}

	var best *entities.SymptomMapping
	bestLen := 0
	for _, sym := range symptoms {
		if n := matchLength(query, sym.SymptomText, sym.LocalizedText); n > bestLen {
			best = sym
			bestLen = n
		}
	}
	return best, nil
}

// matchLength returns the length of the strongest containment match
// between the query and any of the given names, or 0 when nothing
// matches. Longer matched names win ties between candidates.
func matchLength(query string, names ...string) int {
	best := 0
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if strings.Contains(query, name) && len(name) > best {
			best = len(name)
			continue
		}
		// Single-word names also match as a token of the query, so
		// "deere" in the query finds "John Deere".
		for _, word := range strings.Fields(name) {
			if len(word) < 3 {
				continue
			}
			if containsToken(query, word) && len(word) > best {
				best = len(word)
			}
		}
	}
	return best
}

func containsToken(query, token string) bool {
	for _, w := range strings.Fields(query) {
		if w == token {
			return true
		}
	}
	return false
}

func normalizeQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = queryNoise.ReplaceAllString(q, "")
	return strings.Join(strings.Fields(q), " ")
}
