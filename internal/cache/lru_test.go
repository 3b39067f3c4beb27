package cache

import (
	"testing"
	"time"
)

func TestLRUCache_GetSet(t *testing.T) {
	c := NewLRUCache[int](3, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache returned ok")
	}

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}

	// Overwrite keeps a single entry
	c.Set("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) after overwrite = %v, want 10", v)
	}
	if c.Size() != 2 {
		t.Errorf("Size() after overwrite = %d, want 2", c.Size())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")

	// Touch "a" so "b" becomes the oldest
	c.Get("a")
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("expected oldest entry 'b' to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected recently used entry 'a' to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected newest entry 'c' to be present")
	}
}

func TestLRUCache_TTL(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned an expired entry")
	}

	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired() = %d, want 1", n)
	}
	if c.Size() != 0 {
		t.Errorf("Size() after cleanup = %d, want 0", c.Size())
	}
}

func TestLRUCache_DeletePrefix(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	c.Set("alice:2024-01", 1)
	c.Set("alice:2024-02", 2)
	c.Set("bob:2024-01", 3)

	if n := c.DeletePrefix("alice:"); n != 2 {
		t.Errorf("DeletePrefix(alice:) = %d, want 2", n)
	}
	if _, ok := c.Get("alice:2024-01"); ok {
		t.Error("expected alice entries to be gone")
	}
	if _, ok := c.Get("bob:2024-01"); !ok {
		t.Error("expected bob entry to survive")
	}
}
