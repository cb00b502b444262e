package search

import (
	"math"
	"testing"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

func TestScorerExactSubstring(t *testing.T) {
	sc := newScorer("computer", "computer", nil, 1)
	e := &models.CatalogEntry{
		DescriptionEN: "Portable computers weighing not more than 10 kg",
	}
	c := sc.score(e, 0.5)
	if c.Exact != 1 {
		t.Errorf("Exact = %f, want 1 for substring match", c.Exact)
	}
}

func TestScorerExactViaIndonesian(t *testing.T) {
	sc := newScorer("komputer", "komputer", nil, 1)
	e := &models.CatalogEntry{
		DescriptionEN: "Portable computers",
		DescriptionID: "Komputer portabel",
	}
	if c := sc.score(e, 0); c.Exact != 1 {
		t.Errorf("Exact = %f, want 1 via Indonesian description", c.Exact)
	}
}

func TestScorerExactUsesCorrectedQuery(t *testing.T) {
	sc := newScorer("compter", "computer", nil, 1)
	e := &models.CatalogEntry{DescriptionEN: "Data processing computer units"}
	if c := sc.score(e, 0); c.Exact != 1 {
		t.Errorf("Exact = %f, want 1 via corrected query", c.Exact)
	}
}

func TestScorerExactMiss(t *testing.T) {
	sc := newScorer("cotton", "cotton", nil, 1)
	e := &models.CatalogEntry{DescriptionEN: "Portable computers"}
	if c := sc.score(e, 0); c.Exact != 0 {
		t.Errorf("Exact = %f, want 0", c.Exact)
	}
}

func TestScorerFuzzyRange(t *testing.T) {
	sc := newScorer("computer", "computer", nil, 1)
	near := &models.CatalogEntry{DescriptionEN: "computers"}
	far := &models.CatalogEntry{DescriptionEN: "live bovine animals for breeding purposes"}

	cNear := sc.score(near, 0)
	cFar := sc.score(far, 0)
	if cNear.Fuzzy <= cFar.Fuzzy {
		t.Errorf("fuzzy(near)=%f should beat fuzzy(far)=%f", cNear.Fuzzy, cFar.Fuzzy)
	}
	for _, c := range []models.ScoreComponents{cNear, cFar} {
		if c.Fuzzy < 0 || c.Fuzzy > 1 {
			t.Errorf("fuzzy %f out of [0,1]", c.Fuzzy)
		}
	}
	// "computers" differs by one rune over nine.
	if math.Abs(cNear.Fuzzy-(1-1.0/9.0)) > 1e-9 {
		t.Errorf("fuzzy(computers) = %f", cNear.Fuzzy)
	}
}

func TestScorerSemanticOnlyWithCapability(t *testing.T) {
	emb := []float32{1, 0}
	withCap := newScorer("q", "q", emb, 1)
	withoutCap := newScorer("q", "q", nil, 1)

	e := &models.CatalogEntry{DescriptionEN: "x", EmbeddingCombined: []float32{1, 0}}
	if c := withCap.score(e, 0); c.Semantic == nil || *c.Semantic != 1 {
		t.Errorf("Semantic = %v, want 1", c.Semantic)
	}
	if c := withoutCap.score(e, 0); c.Semantic != nil {
		t.Errorf("Semantic = %v without capability, want nil", c.Semantic)
	}

	// Entry without an embedding stays absent even when the query has one.
	bare := &models.CatalogEntry{DescriptionEN: "x"}
	if c := withCap.score(bare, 0); c.Semantic != nil {
		t.Errorf("Semantic = %v for entry without embedding, want nil", c.Semantic)
	}
}

func TestScorerLexicalNormalization(t *testing.T) {
	sc := newScorer("q", "q", nil, 4.0)
	e := &models.CatalogEntry{DescriptionEN: "x"}
	if c := sc.score(e, 2.0); c.Lexical != 0.5 {
		t.Errorf("Lexical = %f, want 0.5", c.Lexical)
	}
	if c := sc.score(e, 4.0); c.Lexical != 1.0 {
		t.Errorf("Lexical = %f, want 1", c.Lexical)
	}

	// All-zero candidate sets keep lexical at zero instead of dividing by it.
	zero := newScorer("q", "q", nil, 0)
	if c := zero.score(e, 0); c.Lexical != 0 {
		t.Errorf("Lexical = %f with zero max, want 0", c.Lexical)
	}
}
