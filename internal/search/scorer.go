package search

import (
	"strings"

	"github.com/muarrikhyazka/hsearch/internal/keyword"
	"github.com/muarrikhyazka/hsearch/internal/models"
	"github.com/muarrikhyazka/hsearch/internal/vector"
	"github.com/muarrikhyazka/hsearch/pkg/utils"
)

// scorer computes per-candidate component scores for one request. It is
// built once per request with the capabilities that request actually has:
// exact, fuzzy, and lexical always; semantic only when a query embedding
// exists. This keeps "is semantic on" out of the scoring loop.
type scorer struct {
	normalizedQuery string
	correctedQuery  string
	queryEmbedding  []float32
	maxLexical      float64
}

// newScorer prepares a scorer. queryEmbedding nil means no semantic
// capability; maxLexical is the highest raw lexical score in the candidate
// set and normalizes that signal into [0,1].
func newScorer(normalizedQuery, correctedQuery string, queryEmbedding []float32, maxLexical float64) *scorer {
	return &scorer{
		normalizedQuery: normalizedQuery,
		correctedQuery:  correctedQuery,
		queryEmbedding:  queryEmbedding,
		maxLexical:      maxLexical,
	}
}

// score computes all components for one candidate. rawLexical is the
// retrieval engine's relevance score for the entry, zero when only the
// semantic path reached it.
func (s *scorer) score(e *models.CatalogEntry, rawLexical float64) models.ScoreComponents {
	descEN := utils.Normalize(e.DescriptionEN)
	descID := utils.Normalize(e.DescriptionID)

	var c models.ScoreComponents
	c.Exact = s.exactScore(descEN, descID)
	c.Fuzzy = s.fuzzyScore(descEN, descID)
	if s.queryEmbedding != nil && len(e.EmbeddingCombined) == len(s.queryEmbedding) {
		sem := vector.CosineSimilarity(s.queryEmbedding, e.EmbeddingCombined)
		c.Semantic = &sem
	}
	if s.maxLexical > 0 {
		c.Lexical = utils.Clamp01(rawLexical / s.maxLexical)
	}
	return c
}

// exactScore is 1 when the normalized or corrected query is a literal
// substring of either language's description.
func (s *scorer) exactScore(descEN, descID string) float64 {
	for _, q := range []string{s.normalizedQuery, s.correctedQuery} {
		if q == "" {
			continue
		}
		if strings.Contains(descEN, q) || (descID != "" && strings.Contains(descID, q)) {
			return 1
		}
	}
	return 0
}

// fuzzyScore is the normalized edit-distance similarity against each
// description, taking the better language.
func (s *scorer) fuzzyScore(descEN, descID string) float64 {
	best := fuzzySimilarity(s.correctedQuery, descEN)
	if descID != "" {
		if sim := fuzzySimilarity(s.correctedQuery, descID); sim > best {
			best = sim
		}
	}
	return best
}

func fuzzySimilarity(query, text string) float64 {
	if query == "" || text == "" {
		return 0
	}
	qLen := len([]rune(query))
	tLen := len([]rune(text))
	maxLen := qLen
	if tLen > maxLen {
		maxLen = tLen
	}
	dist := keyword.LevenshteinDistance(query, text)
	return utils.Clamp01(1 - float64(dist)/float64(maxLen))
}
