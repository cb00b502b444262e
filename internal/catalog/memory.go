package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// MemoryStore is an in-memory Store for tests and the standalone demo mode.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*models.CatalogEntry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*models.CatalogEntry)}
}

// All returns the catalog ordered by code.
func (s *MemoryStore) All(ctx context.Context) ([]*models.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*models.CatalogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries, nil
}

// Get returns one entry by code.
func (s *MemoryStore) Get(ctx context.Context, code string) (*models.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return e, nil
}

// Categories reports categories present in the store.
func (s *MemoryStore) Categories(ctx context.Context) ([]models.CategoryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	semantic := make(map[string]bool)
	for _, e := range s.entries {
		if len(e.EmbeddingCombined) > 0 {
			semantic[e.Category] = true
		} else if _, ok := semantic[e.Category]; !ok {
			semantic[e.Category] = false
		}
	}
	infos := make([]models.CategoryInfo, 0, len(semantic))
	for _, key := range CategoryKeys() {
		if _, present := semantic[key]; !present {
			continue
		}
		infos = append(infos, models.CategoryInfo{
			Key:             key,
			Name:            CategoryName(key),
			SemanticEnabled: semantic[key],
		})
	}
	return infos, nil
}

// Count returns the number of entries.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// BulkInsert stores entries, replacing entries with the same code.
func (s *MemoryStore) BulkInsert(ctx context.Context, entries []*models.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.Code] = e
	}
	return nil
}

// Close is a no-op for MemoryStore.
func (s *MemoryStore) Close() error {
	return nil
}
