package core

import "sync"

// Cache is a thread-safe, generic cache keyed by string. Its owner
// (schemavalidate.Validator) is built fresh for every call to
// expand.Expand rather than relying on package-level state, so two
// calls never share a cache's mutable state.
type Cache[Data any] struct {
	data map[string]Data
	mu   sync.RWMutex
}

// NewCache creates an empty cache.
func NewCache[Data any]() *Cache[Data] {
	return &Cache[Data]{
		data: make(map[string]Data),
	}
}

// Get retrieves an item from the cache.
func (c *Cache[Data]) Get(key string) (Data, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[key]
	return data, ok
}

// Set stores an item in the cache.
func (c *Cache[Data]) Set(key string, data Data) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item from the cache.
func (c *Cache[Data]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}
