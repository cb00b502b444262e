package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// MemoryIndex is a brute-force in-memory index. The catalog tops out around
// twenty thousand entries, so a linear scan per query is fast enough and
// avoids a native ANN dependency.
type MemoryIndex struct {
	dimensions int
	codes      []string
	vectors    [][]float32
	mu         sync.RWMutex
}

// NewMemoryIndex creates an empty index for vectors of the given dimension.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{dimensions: dimensions}, nil
}

// Add appends vectors keyed by entry codes.
func (m *MemoryIndex) Add(ctx context.Context, codes []string, vectors [][]float32) error {
	if len(codes) != len(vectors) {
		return fmt.Errorf("codes and vectors length mismatch: %d vs %d", len(codes), len(vectors))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, code := range codes {
		if len(vectors[i]) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch for %s: got %d, expected %d",
				code, len(vectors[i]), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, vectors[i])
		m.codes = append(m.codes, code)
		m.vectors = append(m.vectors, vec)
	}
	return nil
}

// Search returns the top-k codes by inner product. With unit vectors this is
// cosine-similarity order.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]Result, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.codes) == 0 {
		return nil, nil
	}

	scored := make([]Result, len(m.codes))
	for i, vec := range m.vectors {
		scored[i] = Result{Code: m.codes[i], Score: InnerProduct(query, vec)}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Code < scored[j].Code
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Remove drops vectors by code.
func (m *MemoryIndex) Remove(ctx context.Context, codes []string) error {
	removeSet := make(map[string]bool, len(codes))
	for _, code := range codes {
		removeSet[code] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keptCodes := m.codes[:0]
	keptVectors := m.vectors[:0]
	for i, code := range m.codes {
		if !removeSet[code] {
			keptCodes = append(keptCodes, code)
			keptVectors = append(keptVectors, m.vectors[i])
		}
	}
	m.codes = keptCodes
	m.vectors = keptVectors
	return nil
}

// Save persists the index to path. Format: dimensions (4 bytes), count (4),
// then per vector: code length (4), code bytes, vector bytes.
func (m *MemoryIndex) Save(path string) error {
	if path == "" {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint32(m.dimensions)); err != nil {
		return fmt.Errorf("failed to write dimensions: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(m.codes))); err != nil {
		return fmt.Errorf("failed to write count: %w", err)
	}
	for i, code := range m.codes {
		if err := binary.Write(f, binary.LittleEndian, uint32(len(code))); err != nil {
			return fmt.Errorf("failed to write code length: %w", err)
		}
		if _, err := f.Write([]byte(code)); err != nil {
			return fmt.Errorf("failed to write code: %w", err)
		}
		if _, err := f.Write(vectorToBytes(m.vectors[i])); err != nil {
			return fmt.Errorf("failed to write vector: %w", err)
		}
	}
	return nil
}

// Load replaces the index contents from path. A missing file leaves the
// index unchanged without error; a dimension mismatch is an error.
func (m *MemoryIndex) Load(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	var dim, n uint32
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return fmt.Errorf("failed to read dimensions: %w", err)
	}
	if int(dim) != m.dimensions {
		return fmt.Errorf("dimension mismatch: file has %d, index expects %d", dim, m.dimensions)
	}
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("failed to read count: %w", err)
	}

	codes := make([]string, 0, n)
	vectors := make([][]float32, 0, n)
	buf := make([]byte, m.dimensions*4)
	for i := uint32(0); i < n; i++ {
		var codeLen uint32
		if err := binary.Read(f, binary.LittleEndian, &codeLen); err != nil {
			return fmt.Errorf("failed to read code length: %w", err)
		}
		codeBytes := make([]byte, codeLen)
		if _, err := io.ReadFull(f, codeBytes); err != nil {
			return fmt.Errorf("failed to read code: %w", err)
		}
		if _, err := io.ReadFull(f, buf); err != nil {
			return fmt.Errorf("failed to read vector: %w", err)
		}
		codes = append(codes, string(codeBytes))
		vectors = append(vectors, bytesToVector(buf))
	}

	m.mu.Lock()
	m.codes = codes
	m.vectors = vectors
	m.mu.Unlock()
	return nil
}

// Size returns the number of stored vectors.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.codes)
}

// Close is a no-op for MemoryIndex.
func (m *MemoryIndex) Close() error {
	return nil
}

func vectorToBytes(s []float32) []byte {
	out := make([]byte, len(s)*4)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*4:(i+1)*4], math.Float32bits(v))
	}
	return out
}

func bytesToVector(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4 : (i+1)*4]))
	}
	return out
}
