package models

import (
	"errors"
	"strings"
)

// ErrInvalidQuery is returned for empty or whitespace-only queries, queries
// over the length limit, and non-positive limits. Requests failing validation
// never reach the pipeline.
var ErrInvalidQuery = errors.New("invalid query")

// MaxQueryLength bounds raw query text, matching the public API contract.
const MaxQueryLength = 200

// SearchQuery represents a single search request.
type SearchQuery struct {
	Query string `json:"query"`
	// Category filters results; "" or "all" means no filter.
	Category string `json:"category,omitempty"`
	// Language is a hint: "en", "id", or "auto" (default).
	Language string `json:"language,omitempty"`
	// Enhanced enables typo correction, fuzzy scoring, and semantic search.
	Enhanced bool `json:"enhanced"`
	Limit    int  `json:"limit,omitempty"`
}

// Validate checks the query and normalizes defaulted fields in place.
// Limit 0 becomes defaultLimit; limits above maxLimit are capped.
func (q *SearchQuery) Validate(defaultLimit, maxLimit int) error {
	if strings.TrimSpace(q.Query) == "" {
		return ErrInvalidQuery
	}
	if len(q.Query) > MaxQueryLength {
		return ErrInvalidQuery
	}
	if q.Limit < 0 {
		return ErrInvalidQuery
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Category == "all" {
		q.Category = ""
	}
	switch q.Language {
	case "", "en", "id", "auto":
	default:
		q.Language = "auto"
	}
	return nil
}

// SuggestRequest is a request for autocomplete candidates.
type SuggestRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}
