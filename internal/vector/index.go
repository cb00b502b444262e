// Package vector provides nearest-neighbor search over catalog entry
// embeddings. IDs are entry codes; vectors are combined bilingual embeddings.
package vector

import "context"

// Index defines vector storage and similarity search.
type Index interface {
	Add(ctx context.Context, codes []string, vectors [][]float32) error
	// Search returns the k entry codes nearest to query by inner product.
	Search(ctx context.Context, query []float32, k int) ([]Result, error)
	Remove(ctx context.Context, codes []string) error
	Save(path string) error
	Load(path string) error
	Size() int
	Close() error
}

// Result is one nearest-neighbor hit.
type Result struct {
	Code  string
	Score float64
}
