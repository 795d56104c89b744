// Package cache provides the bounded in-memory LRU used by the API client
// and the filter compiler.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a thread-safe, fixed-capacity least-recently-used cache.
type LRU[K comparable, V any] struct {
	size      int
	evictList *list.List
	items     map[K]*list.Element
	onEvict   func(K, V)
	mu        sync.Mutex
}

// entry is stored in the eviction list
type entry[K comparable, V any] struct {
	key   K
	value V
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictCallback registers fn to run whenever an entry is pushed out by
// capacity. It is called with the cache lock held and must not call back
// into the cache.
func WithEvictCallback[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *LRU[K, V]) {
		c.onEvict = fn
	}
}

// NewLRU creates a new LRU cache holding at most size entries.
// A size below 1 is treated as 1.
func NewLRU[K comparable, V any](size int, opts ...Option[K, V]) *LRU[K, V] {
	c := &LRU[K, V]{
		size:      max(size, 1),
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get retrieves a value and marks it as most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(node)
	return node.Value.(*entry[K, V]).value, true
}

// Peek retrieves a value without touching its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}
	return node.Value.(*entry[K, V]).value, true
}

// Put adds or updates a value at the most recently used position. It
// reports whether an older entry was evicted to make room.
func (c *LRU[K, V]) Put(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Check if key exists
	if node, exists := c.items[key]; exists {
		c.evictList.MoveToFront(node)
		node.Value.(*entry[K, V]).value = value
		return false
	}

	ent := &entry[K, V]{key: key, value: value}
	c.items[key] = c.evictList.PushFront(ent)

	if c.evictList.Len() > c.size {
		c.removeOldest()
		return true
	}
	return false
}

// Remove deletes key from the cache. The eviction callback is not called.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		return false
	}
	c.evictList.Remove(node)
	delete(c.items, key)
	return true
}

// removeOldest removes the least recently used item
func (c *LRU[K, V]) removeOldest() {
	node := c.evictList.Back()
	if node == nil {
		return
	}
	c.evictList.Remove(node)
	kv := node.Value.(*entry[K, V])
	delete(c.items, kv.key)
	if c.onEvict != nil {
		c.onEvict(kv.key, kv.value)
	}
}

// Clear removes all items from the cache
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of items in the cache
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}

// Cap returns the configured capacity.
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// Keys returns the cached keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.evictList.Len())
	for node := c.evictList.Front(); node != nil; node = node.Next() {
		keys = append(keys, node.Value.(*entry[K, V]).key)
	}
	return keys
}
