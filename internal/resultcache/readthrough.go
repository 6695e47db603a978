package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Observer is told about every lookup outcome
type Observer interface {
	CacheHit()
	CacheMiss()
	CacheError()
}

// ReadThrough memoizes a computation in a Cache. Concurrent lookups of the same key
// share one computation. Backend failures are logged and counted, then the value is
// computed as if the cache were absent; they never fail the call.
type ReadThrough[T any] struct {
	cache    Cache
	ttl      time.Duration
	group    singleflight.Group
	logger   *zap.Logger
	observer Observer
}

// NewReadThrough wraps cache. A nil cache computes every value.
func NewReadThrough[T any](cache Cache, ttl time.Duration, logger *zap.Logger, observer Observer) *ReadThrough[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadThrough[T]{cache: cache, ttl: ttl, logger: logger, observer: observer}
}

// Get returns the cached value for key or computes and stores it
func (rt *ReadThrough[T]) Get(ctx context.Context, key string, compute func() (T, error)) (T, error) {
	if rt.cache == nil {
		return compute()
	}

	v, err, _ := rt.group.Do(key, func() (any, error) {
		if value, ok := rt.load(ctx, key); ok {
			return value, nil
		}
		value, err := compute()
		if err != nil {
			return value, err
		}
		rt.store(ctx, key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (rt *ReadThrough[T]) load(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := rt.cache.Get(ctx, key)
	switch {
	case err == nil:
	case IsCacheMiss(err):
		rt.miss()
		return value, false
	default:
		rt.fail("result cache read failed", key, err)
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		rt.fail("result cache entry undecodable", key, err)
		var zero T
		return zero, false
	}
	if rt.observer != nil {
		rt.observer.CacheHit()
	}
	return value, true
}

func (rt *ReadThrough[T]) store(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		rt.fail("result cache entry unencodable", key, err)
		return
	}
	if err := rt.cache.Set(ctx, key, data, rt.ttl); err != nil {
		rt.fail("result cache write failed", key, err)
	}
}

func (rt *ReadThrough[T]) miss() {
	if rt.observer != nil {
		rt.observer.CacheMiss()
	}
}

func (rt *ReadThrough[T]) fail(msg, key string, err error) {
	rt.logger.Warn(msg, zap.String("key", key), zap.Error(err))
	if rt.observer != nil {
		rt.observer.CacheError()
	}
}
