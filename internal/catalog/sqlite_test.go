package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntries() []*models.CatalogEntry {
	return []*models.CatalogEntry{
		{
			Code:              "847130",
			DescriptionEN:     "Portable automatic data processing machines",
			DescriptionID:     "Mesin pengolah data otomatis portabel",
			Chapter:           "84",
			Heading:           "8471",
			Subheading:        "847130",
			Level:             6,
			Category:          CategoryElectronics,
			KeywordsEN:        []string{"data", "machines", "portable"},
			KeywordsID:        []string{"data", "mesin", "portabel"},
			EmbeddingCombined: []float32{0.1, 0.2, 0.3},
		},
		{
			Code:          "520100",
			DescriptionEN: "Cotton, not carded or combed",
			Chapter:       "52",
			Heading:       "5201",
			Subheading:    "520100",
			Level:         6,
			Category:      CategoryTextiles,
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.BulkInsert(ctx, sampleEntries()); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	e, err := store.Get(ctx, "847130")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if e.DescriptionID != "Mesin pengolah data otomatis portabel" {
		t.Errorf("unexpected description_id: %q", e.DescriptionID)
	}
	if len(e.KeywordsEN) != 3 || e.KeywordsEN[0] != "data" {
		t.Errorf("unexpected keywords_en: %v", e.KeywordsEN)
	}
	if len(e.EmbeddingCombined) != 3 || e.EmbeddingCombined[1] != 0.2 {
		t.Errorf("unexpected embedding: %v", e.EmbeddingCombined)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 || all[0].Code != "520100" {
		t.Errorf("All not ordered by code: %v", all)
	}
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStoreReplaceOnConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := sampleEntries()
	if err := store.BulkInsert(ctx, entries); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
	entries[0].DescriptionEN = "updated description"
	if err := store.BulkInsert(ctx, entries[:1]); err != nil {
		t.Fatalf("second BulkInsert failed: %v", err)
	}

	e, err := store.Get(ctx, "847130")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if e.DescriptionEN != "updated description" {
		t.Errorf("description not replaced: %q", e.DescriptionEN)
	}
	count, _ := store.Count(ctx)
	if count != 2 {
		t.Errorf("Count = %d after replace, want 2", count)
	}
}

func TestSQLiteStoreCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.BulkInsert(ctx, sampleEntries()); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	infos, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Categories = %v, want 2 entries", infos)
	}
	// Rule order puts electronics before textiles.
	if infos[0].Key != CategoryElectronics || !infos[0].SemanticEnabled {
		t.Errorf("infos[0] = %+v", infos[0])
	}
	if infos[0].Name != "Elektronik" {
		t.Errorf("infos[0].Name = %q", infos[0].Name)
	}
	if infos[1].Key != CategoryTextiles || infos[1].SemanticEnabled {
		t.Errorf("infos[1] = %+v", infos[1])
	}
}
