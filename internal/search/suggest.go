package search

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/muarrikhyazka/hsearch/internal/keyword"
	"github.com/muarrikhyazka/hsearch/pkg/utils"
)

// Suggest returns up to limit autocomplete candidates for a query fragment,
// ranked prefix matches first, then fuzzy closeness, then lexical order. It
// runs on the vocabulary alone and never touches the semantic subsystem.
func (e *Engine) Suggest(ctx context.Context, fragment, category string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = e.cfg.SuggestionLimit
	}
	frag := utils.Normalize(fragment)
	if utf8.RuneCountInString(frag) < e.cfg.MinSuggestionLen {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := e.suggestTerms(category)

	type ranked struct {
		term     string
		prefix   bool
		distance int
	}
	maxDist := e.cfg.TypoMaxDistanceShort
	if utf8.RuneCountInString(frag) > e.cfg.TypoShortTokenLen {
		maxDist = e.cfg.TypoMaxDistanceLong
	}

	candidates := make([]ranked, 0, limit*2)
	for _, term := range terms {
		if term == frag {
			continue
		}
		if strings.HasPrefix(term, frag) {
			candidates = append(candidates, ranked{term: term, prefix: true})
			continue
		}
		if dist := keyword.LevenshteinDistance(frag, term); dist <= maxDist {
			candidates = append(candidates, ranked{term: term, distance: dist})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.prefix != b.prefix {
			return a.prefix
		}
		if !a.prefix && a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.term < b.term
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.term
	}
	return out, nil
}

// suggestTerms returns the vocabulary restricted to one category, or the
// whole vocabulary when the filter is empty.
func (e *Engine) suggestTerms(category string) []string {
	if category == "" {
		return e.vocab.Terms()
	}
	seen := make(map[string]struct{})
	for _, entry := range e.entries {
		if entry.Category != category {
			continue
		}
		for _, t := range entry.KeywordsEN {
			seen[t] = struct{}{}
		}
		for _, t := range entry.KeywordsID {
			seen[t] = struct{}{}
		}
	}
	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
