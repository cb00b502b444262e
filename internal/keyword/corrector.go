package keyword

import (
	"strings"
	"unicode/utf8"
)

// TypoCorrector rewrites query tokens that are absent from the catalog
// vocabulary to their closest known term within an edit-distance threshold.
type TypoCorrector struct {
	vocab *Vocabulary
	// maxShort applies to tokens of up to shortLen runes, maxLong beyond.
	maxShort int
	maxLong  int
	shortLen int
}

// NewTypoCorrector builds a corrector over vocab. Non-positive thresholds
// fall back to 2 within 6 runes and 3 beyond.
func NewTypoCorrector(vocab *Vocabulary, maxShort, maxLong, shortLen int) *TypoCorrector {
	if maxShort <= 0 {
		maxShort = 2
	}
	if maxLong <= 0 {
		maxLong = 3
	}
	if shortLen <= 0 {
		shortLen = 6
	}
	return &TypoCorrector{vocab: vocab, maxShort: maxShort, maxLong: maxLong, shortLen: shortLen}
}

// Correct rewrites unknown tokens and reports applied substitutions as
// "original → replacement" pairs. Tokens already in the vocabulary, and
// tokens with no candidate within the threshold, pass through unchanged.
func (c *TypoCorrector) Correct(tokens []string) (corrected []string, applied []string) {
	corrected = make([]string, len(tokens))
	for i, tok := range tokens {
		if c.vocab.Contains(tok) {
			corrected[i] = tok
			continue
		}
		best := c.bestMatch(tok)
		if best == "" {
			corrected[i] = tok
			continue
		}
		corrected[i] = best
		applied = append(applied, tok+" → "+best)
	}
	return corrected, applied
}

// bestMatch returns the vocabulary term closest to tok, or "" when nothing
// falls within the threshold. Ties resolve by shorter distance, then higher
// frequency, then lexical order, so equally good candidates never make the
// outcome depend on map iteration.
func (c *TypoCorrector) bestMatch(tok string) string {
	maxDist := c.maxShort
	tokLen := utf8.RuneCountInString(tok)
	if tokLen > c.shortLen {
		maxDist = c.maxLong
	}

	best := ""
	bestDist := maxDist + 1
	bestFreq := 0
	for _, term := range c.vocab.Terms() {
		// Length gap is a lower bound on edit distance; skip the DP when
		// the candidate cannot qualify.
		gap := utf8.RuneCountInString(term) - tokLen
		if gap < 0 {
			gap = -gap
		}
		if gap > maxDist {
			continue
		}

		dist := LevenshteinDistance(tok, term)
		if dist > maxDist {
			continue
		}
		freq := c.vocab.Frequency(term)
		switch {
		case dist < bestDist:
		case dist == bestDist && freq > bestFreq:
		case dist == bestDist && freq == bestFreq && term < best:
		default:
			continue
		}
		best, bestDist, bestFreq = term, dist, freq
	}
	return best
}

// JoinTokens renders a token sequence back into a query string.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}
