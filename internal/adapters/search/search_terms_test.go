package search

import (
	"testing"

	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestBuildSearchTerms_SplitsWords(t *testing.T) {
	candidate := &entities.Candidate{
		Name: "John Deere 1025R",
		Step: entities.StepModel,
	}

	terms := BuildSearchTerms(candidate)

	assert.Contains(t, terms, "john deere 1025r")
	assert.Contains(t, terms, "john")
	assert.Contains(t, terms, "deere")
	assert.Contains(t, terms, "1025r")
}

func TestBuildSearchTerms_IncludesLocalizedName(t *testing.T) {
	candidate := &entities.Candidate{
		Name:          "Tractor",
		LocalizedName: "Traktor",
		Step:          entities.StepMachineType,
	}

	terms := BuildSearchTerms(candidate)

	assert.Contains(t, terms, "tractor")
	assert.Contains(t, terms, "traktor")
}

func TestBuildSearchTerms_Deduplication(t *testing.T) {
	candidate := &entities.Candidate{
		Name:          "Filter",
		LocalizedName: "Filter",
		Step:          entities.StepCategory,
	}

	terms := BuildSearchTerms(candidate)

	assert.Equal(t, []string{"filter"}, terms)
}

func TestBuildSearchTerms_SplitsOnHyphenAndSlash(t *testing.T) {
	candidate := &entities.Candidate{
		Name: "Hydraulic-Pump/Seal",
		Step: entities.StepCategory,
	}

	terms := BuildSearchTerms(candidate)

	assert.Contains(t, terms, "hydraulic")
	assert.Contains(t, terms, "pump")
	assert.Contains(t, terms, "seal")
}

func TestBuildSearchTerms_EmptyCandidate(t *testing.T) {
	terms := BuildSearchTerms(&entities.Candidate{})
	assert.Empty(t, terms)
}
