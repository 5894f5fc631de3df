package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is a thread-safe in-memory cache implementation.
type MemoryCache struct {
	data       sync.Map
	defaultTTL time.Duration
	maxSize    int // Maximum number of entries (0 = unlimited)
	count      atomic.Int64
	stopCh     chan struct{}
	stopOnce   sync.Once
	closed     atomic.Bool
}

// memoryCacheEntry holds a cached value with its expiration time.
type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // Maximum number of entries (0 = unlimited)
	CleanupInterval time.Duration // Interval for expired entry cleanup (0 = no cleanup)
}

// NewMemoryCache creates a new memory cache with the given options.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stopCh:     make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}

	return c
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	v, ok := c.data.Load(key)
	if !ok {
		return nil, ErrCacheMiss
	}

	entry := v.(memoryCacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.data.Delete(key)
		c.count.Add(-1)
		return nil, ErrCacheMiss
	}

	return entry.value, nil
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	// Crude size bound: drop everything when the limit is hit.
	if c.maxSize > 0 && c.count.Load() >= int64(c.maxSize) {
		c.clearAll()
	}

	if _, loaded := c.data.Swap(key, memoryCacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}); !loaded {
		c.count.Add(1)
	}
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		c.count.Add(-1)
	}
	return nil
}

// DeleteByPrefix removes all keys with the given prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.data.Range(func(k, _ any) bool {
		if strings.HasPrefix(k.(string), prefix) {
			if _, loaded := c.data.LoadAndDelete(k); loaded {
				c.count.Add(-1)
			}
		}
		return true
	})
	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.clearAll()
	return nil
}

// Close stops the cleanup goroutine and marks the cache closed.
func (c *MemoryCache) Close() error {
	c.closed.Store(true)
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.clearAll()
	return nil
}

func (c *MemoryCache) clearAll() {
	c.data.Range(func(k, _ any) bool {
		c.data.Delete(k)
		return true
	})
	c.count.Store(0)
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.data.Range(func(k, v any) bool {
				if now.After(v.(memoryCacheEntry).expiresAt) {
					if _, loaded := c.data.LoadAndDelete(k); loaded {
						c.count.Add(-1)
					}
				}
				return true
			})
		case <-c.stopCh:
			return
		}
	}
}
