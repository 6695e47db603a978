// Package resultcache memoizes detection results behind a pluggable byte cache.
// Backends are an in-process TTL map and Redis; either may be shared by many
// concurrent analyzers.
package resultcache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with expiry
type Cache interface {
	// Get returns ErrCacheMiss when key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value; a zero ttl selects the backend default
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every key under the backend's prefix
	Clear(ctx context.Context) error

	Close() error
}

// Backend names accepted by New
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config holds the settings shared by all backends
type Config struct {
	Backend string
	// DefaultTTL applies when Set is called with a zero ttl
	DefaultTTL time.Duration
	// Prefix is prepended to every key
	Prefix string
	Redis  RedisConfig
}

// DefaultConfig returns the in-memory configuration
func DefaultConfig() Config {
	return Config{
		Backend:    BackendMemory,
		DefaultTTL: 10 * time.Minute,
		Prefix:     "arud:",
		Redis:      DefaultRedisConfig(),
	}
}

// New opens the configured backend. BackendNone yields a nil Cache, which
// ReadThrough treats as "always compute".
func New(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryCache(cfg), nil
	case BackendRedis:
		return NewRedisCache(cfg)
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// ErrCacheMiss is returned when a key is not found in the cache
type ErrCacheMiss struct {
	Key string
}

func (e ErrCacheMiss) Error() string {
	return "cache miss: " + e.Key
}

// IsCacheMiss checks if an error is a cache miss
func IsCacheMiss(err error) bool {
	var miss ErrCacheMiss
	return errors.As(err, &miss)
}
