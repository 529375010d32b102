// Package cache provides in-memory memoization for resolved rule tables.
package cache

import "fmt"

// Cache stores values by string key.
type Cache[V any] interface {
	// Get retrieves a cached value.
	Get(key string) (V, bool)

	// Set stores a value in the cache.
	Set(key string, value V)

	// Clear removes all cached entries.
	Clear()

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// HitRate returns the fraction of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// String returns a string representation of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("hits=%d misses=%d entries=%d", s.Hits, s.Misses, s.Entries)
}

// Nop is a cache that never stores anything.
type Nop[V any] struct{}

func (Nop[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

func (Nop[V]) Set(string, V) {}

func (Nop[V]) Clear() {}

func (Nop[V]) Stats() Stats { return Stats{} }
