package search

import (
	"math"
	"testing"

	"github.com/muarrikhyazka/hsearch/internal/config"
	"github.com/muarrikhyazka/hsearch/internal/models"
)

var testWeights = config.FusionWeights{Exact: 0.35, Fuzzy: 0.20, Semantic: 0.30, Lexical: 0.15}

func TestFuseAllSignals(t *testing.T) {
	sem := 0.5
	s := &models.ScoreComponents{Exact: 1, Fuzzy: 0.8, Semantic: &sem, Lexical: 0.6}
	got := fuse(s, testWeights)
	want := 0.35*1 + 0.20*0.8 + 0.30*0.5 + 0.15*0.6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("fuse = %f, want %f", got, want)
	}
}

func TestFuseRedistributesAbsentSemantic(t *testing.T) {
	s := &models.ScoreComponents{Exact: 1, Fuzzy: 1, Lexical: 1}
	got := fuse(s, testWeights)
	// With every present signal at its maximum, the fused score must still
	// reach 1 despite the missing component.
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("fuse(max, no semantic) = %f, want 1", got)
	}
}

func TestFuseAbsenceDoesNotPenalize(t *testing.T) {
	sem := 0.0
	withZero := &models.ScoreComponents{Exact: 1, Fuzzy: 0.5, Semantic: &sem, Lexical: 0.5}
	absent := &models.ScoreComponents{Exact: 1, Fuzzy: 0.5, Lexical: 0.5}
	if fuse(absent, testWeights) <= fuse(withZero, testWeights) {
		t.Error("absent semantic must score higher than semantic zero")
	}
}

func TestFuseProportionalRedistribution(t *testing.T) {
	s := &models.ScoreComponents{Exact: 1}
	got := fuse(s, testWeights)
	// Semantic's 0.30 spreads over the remaining 0.70 proportionally, so the
	// exact weight becomes 0.35/0.70 of the whole.
	want := 0.35 / 0.70
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("fuse = %f, want %f", got, want)
	}
}
