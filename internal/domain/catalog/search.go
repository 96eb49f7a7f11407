package catalog

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"prema-telhados/go_backend/internal/domain/quote"
)

// Search filters entries by description. Substring matches come first, then
// descriptions with a word within a small edit distance of the term. Order
// inside each group follows the catalog.
func Search(entries []quote.CatalogEntry, term string) []quote.CatalogEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}
	maxDist := typoBudget(term)

	exact := []quote.CatalogEntry{}
	var fuzzy []quote.CatalogEntry
	for _, e := range entries {
		desc := strings.ToLower(e.Description)
		switch {
		case strings.Contains(desc, term):
			exact = append(exact, e)
		case maxDist > 0 && closeWord(desc, term, maxDist):
			fuzzy = append(fuzzy, e)
		}
	}
	return append(exact, fuzzy...)
}

func typoBudget(term string) int {
	n := len([]rune(term))
	switch {
	case n >= 8:
		return 2
	case n >= 4:
		return 1
	default:
		return 0
	}
}

func closeWord(desc, term string, maxDist int) bool {
	words := strings.FieldsFunc(desc, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	for _, w := range words {
		if levenshtein.ComputeDistance(w, term) <= maxDist {
			return true
		}
	}
	return false
}
