// Package cache provides in-memory TTL caches.
package cache

import (
	"strconv"
	"sync"
	"time"

	"github.com/sanixdarker/gqlg/pkg/querygen"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache provides in-memory caching with TTL.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go c.cleanup(time.Minute)
	return c
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value in the cache.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len returns the number of entries, expired ones included until cleanup.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// ResultCache caches generation results by schema hash and depth limit.
type ResultCache struct {
	*Cache
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{Cache: New(ttl)}
}

// GetResult retrieves a cached result.
func (c *ResultCache) GetResult(schemaHash string, depthLimit int) (*querygen.Result, bool) {
	if val, ok := c.Get(resultKey(schemaHash, depthLimit)); ok {
		if res, ok := val.(*querygen.Result); ok {
			return res, true
		}
	}
	return nil, false
}

// SetResult caches a result.
func (c *ResultCache) SetResult(schemaHash string, depthLimit int, res *querygen.Result) {
	c.Set(resultKey(schemaHash, depthLimit), res)
}

func resultKey(schemaHash string, depthLimit int) string {
	return schemaHash + ":" + strconv.Itoa(depthLimit)
}
