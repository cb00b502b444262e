package embedding

import "testing"

func TestCacheGetSet(t *testing.T) {
	c := NewCache(2)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("a", []float32{1})
	v, ok := c.Get("a")
	if !ok || len(v) != 1 || v[0] != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	c.Set("c", []float32{3})
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected b to survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCacheTouchOnGet(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	c.Get("a")
	c.Set("c", []float32{3})
	if _, ok := c.Get("a"); !ok {
		t.Error("expected recently used a to survive")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
}

func TestCacheUpdateExisting(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []float32{1})
	c.Set("a", []float32{9})
	v, ok := c.Get("a")
	if !ok || v[0] != 9 {
		t.Fatalf("Get(a) = %v, %v after update", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
