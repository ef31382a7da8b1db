package stockroom

import (
	"testing"
)

// TestQueryCacheBasicOperations tests the query-result cache directly.
func TestQueryCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := newQueryCache(capacity)

	// Store some results
	keys := []uint64{11, 22, 33, 44, 55}
	for i, key := range keys {
		cache.put(key, []archetypeID{archetypeID(i + 1)})
	}
	if cache.len() != len(keys) {
		t.Errorf("Cache holds %d results, want %d", cache.len(), len(keys))
	}

	// Retrieve them
	for i, key := range keys {
		ids, found := cache.get(key)
		if !found {
			t.Errorf("Key %d not found in cache", key)
			continue
		}
		if len(ids) != 1 || ids[0] != archetypeID(i+1) {
			t.Errorf("Key %d resolves %v, want [%d]", key, ids, i+1)
		}
	}

	// Re-inserting an existing key keeps the original entry
	cache.put(keys[0], []archetypeID{99})
	if ids, _ := cache.get(keys[0]); len(ids) != 1 || ids[0] != 1 {
		t.Errorf("Key %d resolves %v after duplicate put, want [1]", keys[0], ids)
	}

	// Missing key
	if _, found := cache.get(999); found {
		t.Error("Found nonexistent key in cache")
	}

	// Clear drops everything
	cache.clear()
	if cache.len() != 0 {
		t.Errorf("Cache holds %d results after clear, want 0", cache.len())
	}
	if _, found := cache.get(keys[0]); found {
		t.Error("Found key after clear")
	}
}

// TestQueryCacheCapacity verifies the full cache resets rather than grow
// without bound.
func TestQueryCacheCapacity(t *testing.T) {
	const capacity = 4
	cache := newQueryCache(capacity)

	for i := 0; i < capacity; i++ {
		cache.put(uint64(i), []archetypeID{archetypeID(i + 1)})
	}
	if cache.len() != capacity {
		t.Fatalf("Cache holds %d results, want %d", cache.len(), capacity)
	}

	// One past capacity: the cache is dropped and restarted
	cache.put(uint64(capacity), []archetypeID{42})
	if cache.len() != 1 {
		t.Errorf("Cache holds %d results after overflow, want 1", cache.len())
	}
	ids, found := cache.get(uint64(capacity))
	if !found || len(ids) != 1 || ids[0] != 42 {
		t.Errorf("Overflow key resolves (%v, %v), want ([42], true)", ids, found)
	}
	if _, found := cache.get(0); found {
		t.Error("Old key survived overflow reset")
	}
}
