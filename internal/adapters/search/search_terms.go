package search

import (
	"strings"
	"unicode"

	"github.com/machparts/partsearch/internal/domain/entities"
)

const MaxIndexedTerms = 20

// BuildSearchTerms collects the lowercase token bag indexed alongside a
// candidate: full names plus individual words, so "1025R" matches the
// model "John Deere 1025R" without prefix tricks.
func BuildSearchTerms(candidate *entities.Candidate) []string {
	termSet := make(map[string]struct{})

	addTerms(termSet, candidate.Name)
	addTerms(termSet, candidate.LocalizedName)

	return toSlice(termSet, MaxIndexedTerms)
}

func addTerms(set map[string]struct{}, name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	set[name] = struct{}{}

	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '/'
	}) {
		if word != "" {
			set[word] = struct{}{}
		}
	}
}

func toSlice(set map[string]struct{}, limit int) []string {
	result := make([]string, 0, len(set))
	for k := range set {
		result = append(result, k)
		if len(result) >= limit {
			break
		}
	}
	return result
}
