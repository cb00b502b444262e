package models

// ScoreComponents holds the per-candidate signals and their fused value.
// Semantic is a pointer: nil means the signal was absent for this request,
// which is distinct from a computed score of zero.
type ScoreComponents struct {
	Exact    float64  `json:"exact_score"`
	Fuzzy    float64  `json:"fuzzy_score"`
	Semantic *float64 `json:"semantic_score,omitempty"`
	Lexical  float64  `json:"lexical_score"`
	Fused    float64  `json:"score"`
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	Entry  *CatalogEntry   `json:"entry"`
	Scores ScoreComponents `json:"scores"`
	Rank   int             `json:"rank"`
}

// SearchResponse is the full response for one search request.
type SearchResponse struct {
	Results    []*SearchResult `json:"results"`
	TotalCount int             `json:"total_count"`
	Query      string          `json:"query"`
	// CorrectedQuery is set only when typo correction actually changed the
	// query; a no-op rewrite is never reported.
	CorrectedQuery string `json:"corrected_query,omitempty"`
	ExpandedTerms  []string `json:"expanded_terms,omitempty"`
	// TypoSuggestions lists applied corrections as "original → replacement".
	TypoSuggestions []string `json:"typo_suggestions,omitempty"`
	Category        string   `json:"category,omitempty"`
	ElapsedMS       int64    `json:"execution_time_ms"`
	// FeaturesUsed names the features that actually executed for this
	// request, not those merely requested.
	FeaturesUsed []string `json:"features_used"`
}

// SuggestResponse holds ordered autocomplete candidates.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}
