// Package embedding produces multilingual sentence embeddings for catalog
// descriptions and queries, with an ONNX backend and an LRU cache.
package embedding

import "context"

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
