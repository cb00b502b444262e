package models

import (
	"errors"
	"strings"
	"testing"
)

func TestSearchQueryValidate(t *testing.T) {
	q := &SearchQuery{Query: "computer", Limit: 0}
	if err := q.Validate(20, 100); err != nil {
		t.Fatalf("valid query rejected: %v", err)
	}
	if q.Limit != 20 {
		t.Errorf("zero limit should default to 20, got %d", q.Limit)
	}

	q = &SearchQuery{Query: "computer", Limit: 500}
	if err := q.Validate(20, 100); err != nil {
		t.Fatal(err)
	}
	if q.Limit != 100 {
		t.Errorf("limit should cap at 100, got %d", q.Limit)
	}
}

func TestSearchQueryValidateRejects(t *testing.T) {
	for _, q := range []*SearchQuery{
		{Query: ""},
		{Query: "   "},
		{Query: "\t\n"},
		{Query: "phone", Limit: -1},
		{Query: strings.Repeat("x", MaxQueryLength+1)},
	} {
		if err := q.Validate(20, 100); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidQuery", q, err)
		}
	}
}

func TestSearchQueryValidateNormalizes(t *testing.T) {
	q := &SearchQuery{Query: "phone", Category: "all", Language: "fr", Limit: 5}
	if err := q.Validate(20, 100); err != nil {
		t.Fatal(err)
	}
	if q.Category != "" {
		t.Errorf("category \"all\" should normalize to empty, got %q", q.Category)
	}
	if q.Language != "auto" {
		t.Errorf("unknown language should normalize to auto, got %q", q.Language)
	}
}
