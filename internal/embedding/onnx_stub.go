//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

var errNoCGO = errors.New("ONNX embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXEmbedder stub when built without CGO (see onnx.go for the real one).
type ONNXEmbedder struct{}

// NewONNXEmbedder returns an error when built without CGO.
func NewONNXEmbedder(_ string, _, _, _ int) (*ONNXEmbedder, error) {
	return nil, errNoCGO
}

// Embed is unreachable without CGO; NewONNXEmbedder always fails.
func (e *ONNXEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errNoCGO
}

// EmbedBatch is unreachable without CGO; NewONNXEmbedder always fails.
func (e *ONNXEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errNoCGO
}

// Dimensions is unreachable without CGO; NewONNXEmbedder always fails.
func (e *ONNXEmbedder) Dimensions() int { return 0 }

// Close is unreachable without CGO; NewONNXEmbedder always fails.
func (e *ONNXEmbedder) Close() error { return nil }
