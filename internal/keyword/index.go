// Package keyword provides full-text retrieval over the catalog and
// edit-distance typo correction against the catalog vocabulary.
package keyword

import (
	"context"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// Hit is one full-text match: the entry code and its relevance score on the
// index's own unbounded scale.
type Hit struct {
	Code  string
	Score float64
}

// CatalogIndex defines full-text operations over catalog entries.
type CatalogIndex interface {
	// Index adds or replaces one entry.
	Index(ctx context.Context, e *models.CatalogEntry) error
	// IndexAll adds or replaces entries in bulk.
	IndexAll(ctx context.Context, entries []*models.CatalogEntry) error
	// Search matches terms against descriptions and keywords, optionally
	// restricted to one category, returning up to limit hits by relevance.
	Search(ctx context.Context, terms []string, category string, limit int) ([]Hit, error)
	// Delete removes one entry by code.
	Delete(ctx context.Context, code string) error
	// DocCount returns the number of indexed entries.
	DocCount() (uint64, error)
	Close() error
}
