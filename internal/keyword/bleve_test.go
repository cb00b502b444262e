package keyword

import (
	"context"
	"testing"
)

func newTestIndex(t *testing.T) *BleveIndex {
	t.Helper()
	idx, err := NewMemoryBleveIndex()
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	if err := idx.IndexAll(context.Background(), testEntries()); err != nil {
		t.Fatalf("failed to index entries: %v", err)
	}
	return idx
}

func TestBleveSearchEnglish(t *testing.T) {
	idx := newTestIndex(t)
	hits, err := idx.Search(context.Background(), []string{"computer"}, "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits for computer")
	}
	found := false
	for _, h := range hits {
		if h.Code == "847141" {
			found = true
		}
		if h.Score <= 0 {
			t.Errorf("hit %s has non-positive score %f", h.Code, h.Score)
		}
	}
	if !found {
		t.Error("expected 847141 among hits")
	}
}

func TestBleveSearchIndonesianKeyword(t *testing.T) {
	idx := newTestIndex(t)
	hits, err := idx.Search(context.Background(), []string{"komputer"}, "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Code != "847130" {
		t.Errorf("hits = %v, want only 847130", hits)
	}
}

func TestBleveSearchCategoryFilter(t *testing.T) {
	idx := newTestIndex(t)
	// "cotton" only matches a textiles entry; an electronics filter must
	// exclude it rather than re-rank it.
	hits, err := idx.Search(context.Background(), []string{"cotton"}, "electronics", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want none under electronics filter", hits)
	}

	hits, err = idx.Search(context.Background(), []string{"cotton"}, "textiles", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Code != "520100" {
		t.Errorf("hits = %v, want only 520100", hits)
	}
}

func TestBleveSearchMultiTermUnion(t *testing.T) {
	idx := newTestIndex(t)
	hits, err := idx.Search(context.Background(), []string{"cotton", "computer"}, "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) < 2 {
		t.Errorf("expected union of both terms, got %v", hits)
	}
}

func TestBleveSearchEmptyTerms(t *testing.T) {
	idx := newTestIndex(t)
	hits, err := idx.Search(context.Background(), nil, "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits != nil {
		t.Errorf("hits = %v, want nil for empty terms", hits)
	}
}

func TestBleveDeleteAndCount(t *testing.T) {
	idx := newTestIndex(t)
	count, err := idx.DocCount()
	if err != nil {
		t.Fatalf("DocCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("DocCount = %d, want 3", count)
	}

	if err := idx.Delete(context.Background(), "520100"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	hits, err := idx.Search(context.Background(), []string{"cotton"}, "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v after delete, want none", hits)
	}
}
