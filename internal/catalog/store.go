// Package catalog provides read-only access to the HS-code catalog snapshot
// and the import path that builds it.
package catalog

import (
	"context"
	"errors"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// ErrNotFound is returned when an entry code does not exist in the store.
var ErrNotFound = errors.New("catalog entry not found")

// Store is the catalog persistence contract. The search engine only reads;
// writes happen through the import path before the engine starts.
type Store interface {
	// All returns the full catalog snapshot ordered by code.
	All(ctx context.Context) ([]*models.CatalogEntry, error)
	// Get returns a single entry by code, or ErrNotFound.
	Get(ctx context.Context, code string) (*models.CatalogEntry, error)
	// Categories returns the known categories with display names and whether
	// entries in the category carry embeddings.
	Categories(ctx context.Context) ([]models.CategoryInfo, error)
	// Count returns the number of entries.
	Count(ctx context.Context) (int64, error)
	// BulkInsert writes entries, replacing any existing rows with the same code.
	BulkInsert(ctx context.Context, entries []*models.CatalogEntry) error

	Close() error
}
