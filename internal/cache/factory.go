package cache

import "time"

// Options holds configuration for cache creation.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache (0 = unlimited).
	MaxSize int
}

// New creates a cache based on the provided options: Redis when a URL is
// configured, otherwise in-memory.
func New(opts Options) (Cache, error) {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 5 * time.Minute
	}

	if opts.RedisURL != "" {
		return NewRedisCache(RedisCacheOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	}), nil
}
