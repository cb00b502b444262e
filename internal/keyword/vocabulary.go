package keyword

import (
	"sort"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// Vocabulary maps catalog terms to the number of entries carrying them,
// across both languages' keyword sets. It backs typo correction and
// autocomplete.
type Vocabulary struct {
	freq  map[string]int
	terms []string
}

// BuildVocabulary collects every keyword from both languages over all
// entries. Terms are returned in sorted order by Terms().
func BuildVocabulary(entries []*models.CatalogEntry) *Vocabulary {
	freq := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.KeywordsEN {
			freq[t]++
		}
		for _, t := range e.KeywordsID {
			freq[t]++
		}
	}
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return &Vocabulary{freq: freq, terms: terms}
}

// Contains reports whether term is a known catalog term.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.freq[term]
	return ok
}

// Frequency returns the number of entries carrying term.
func (v *Vocabulary) Frequency(term string) int {
	return v.freq[term]
}

// Terms returns all known terms in lexical order. Callers must not modify
// the returned slice.
func (v *Vocabulary) Terms() []string {
	return v.terms
}

// Len reports the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.freq)
}
