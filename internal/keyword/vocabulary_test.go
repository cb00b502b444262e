package keyword

import (
	"testing"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

func testEntries() []*models.CatalogEntry {
	return []*models.CatalogEntry{
		{
			Code:          "847130",
			DescriptionEN: "Portable computers",
			DescriptionID: "Komputer portabel",
			Category:      "electronics",
			KeywordsEN:    []string{"computers", "portable"},
			KeywordsID:    []string{"komputer", "portabel"},
		},
		{
			Code:          "847141",
			DescriptionEN: "Data processing machines with computer units",
			Category:      "electronics",
			KeywordsEN:    []string{"computer", "data", "machines", "processing", "units"},
		},
		{
			Code:          "520100",
			DescriptionEN: "Cotton, not carded or combed",
			DescriptionID: "Kapas, tidak digaruk atau disisir",
			Category:      "textiles",
			KeywordsEN:    []string{"carded", "combed", "cotton"},
			KeywordsID:    []string{"digaruk", "disisir", "kapas"},
		},
	}
}

func TestBuildVocabulary(t *testing.T) {
	v := BuildVocabulary(testEntries())

	if !v.Contains("computer") || !v.Contains("komputer") || !v.Contains("kapas") {
		t.Error("expected terms from both languages in vocabulary")
	}
	if v.Contains("telephone") {
		t.Error("unexpected term in vocabulary")
	}
	if v.Frequency("computer") != 1 {
		t.Errorf("Frequency(computer) = %d, want 1", v.Frequency("computer"))
	}
	if v.Frequency("missing") != 0 {
		t.Errorf("Frequency(missing) = %d, want 0", v.Frequency("missing"))
	}
}

func TestVocabularyTermsSorted(t *testing.T) {
	v := BuildVocabulary(testEntries())
	terms := v.Terms()
	if len(terms) != v.Len() {
		t.Fatalf("Terms() has %d entries, Len() = %d", len(terms), v.Len())
	}
	for i := 1; i < len(terms); i++ {
		if terms[i-1] >= terms[i] {
			t.Fatalf("terms not strictly sorted at %d: %q >= %q", i, terms[i-1], terms[i])
		}
	}
}
