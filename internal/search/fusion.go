package search

import (
	"github.com/muarrikhyazka/hsearch/internal/config"
	"github.com/muarrikhyazka/hsearch/internal/models"
)

// fuse combines the component scores into one ranking value. When the
// semantic component is absent for a candidate, its weight is redistributed
// proportionally over the remaining signals so absence does not penalize the
// candidate and the maximum achievable score stays 1 either way.
func fuse(s *models.ScoreComponents, w config.FusionWeights) float64 {
	if s.Semantic != nil {
		return w.Exact*s.Exact + w.Fuzzy*s.Fuzzy + w.Semantic*(*s.Semantic) + w.Lexical*s.Lexical
	}
	remaining := w.Exact + w.Fuzzy + w.Lexical
	if remaining <= 0 {
		return 0
	}
	scale := (remaining + w.Semantic) / remaining
	return scale * (w.Exact*s.Exact + w.Fuzzy*s.Fuzzy + w.Lexical*s.Lexical)
}
