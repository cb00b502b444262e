package cache

import (
	"testing"
	"time"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) *ResultCache {
	t.Helper()
	c, err := New("", ttl)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Minute)

	resp := &models.SearchResponse{
		Query:      "computer",
		TotalCount: 1,
		Results: []*models.SearchResult{
			{Entry: &models.CatalogEntry{Code: "847130", DescriptionEN: "Portable computers"}, Rank: 1},
		},
		FeaturesUsed: []string{"lexical_search"},
	}
	key := Key("computer", "", 20, true)
	if err := c.Set(key, resp); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Query != "computer" || got.TotalCount != 1 || len(got.Results) != 1 {
		t.Errorf("unexpected cached response: %+v", got)
	}
	if got.Results[0].Entry.Code != "847130" {
		t.Errorf("entry code = %q", got.Results[0].Entry.Code)
	}
}

func TestCacheMiss(t *testing.T) {
	c := newTestCache(t, time.Minute)
	if _, ok := c.Get(Key("absent", "", 20, true)); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)
	key := Key("computer", "", 20, true)
	if err := c.Set(key, &models.SearchResponse{Query: "computer"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := c.Get(key); !ok {
		t.Fatal("expected hit before expiry")
	}
	time.Sleep(120 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Error("expected miss after TTL")
	}
}

func TestKeyDeterministicAndSensitive(t *testing.T) {
	a := Key("computer", "", 20, true)
	if a != Key("computer", "", 20, true) {
		t.Error("identical parameters produced different keys")
	}
	variants := []string{
		Key("computer", "electronics", 20, true),
		Key("computer", "", 10, true),
		Key("computer", "", 20, false),
		Key("komputer", "", 20, true),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collided with base key", i)
		}
	}
}
