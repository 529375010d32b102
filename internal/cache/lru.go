package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// LRUCache implements an in-memory LRU cache.
type LRUCache[V any] struct {
	maxEntries int

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type lruEntry[V any] struct {
	key   string
	value V
}

// NewLRUCache creates a new LRU cache holding at most maxEntries values.
// A non-positive maxEntries is treated as 1.
func NewLRUCache[V any](maxEntries int) *LRUCache[V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &LRUCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	// Move to front (most recently used)
	c.order.MoveToFront(elem)
	c.hits.Add(1)
	return elem.Value.(*lruEntry[V]).value, true
}

func (c *LRUCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[key]; exists {
		elem.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.maxEntries {
		c.evictOldest()
	}

	elem := c.order.PushFront(&lruEntry[V]{key: key, value: value})
	c.entries[key] = elem
}

func (c *LRUCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[key]; exists {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
}

func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

func (c *LRUCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.order.Len(),
	}
}

func (c *LRUCache[V]) evictOldest() {
	elem := c.order.Back()
	if elem != nil {
		delete(c.entries, elem.Value.(*lruEntry[V]).key)
		c.order.Remove(elem)
	}
}
