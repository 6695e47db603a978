package resultcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemory(t *testing.T) *MemoryCache {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Prefix = "test:"
	c := NewMemoryCache(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_GetMiss(t *testing.T) {
	c := newMemory(t)

	_, err := c.Get(context.Background(), "missing")
	assert.True(t, IsCacheMiss(err))
	assert.EqualError(t, err, "cache miss: missing")
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	require.NoError(t, c.Set(ctx, "forever", []byte("v"), -1))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.True(t, IsCacheMiss(err))
	_, err = c.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	c := newMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, "key", nil, 0), context.Canceled)
}

func TestNew(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		c, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.IsType(t, &MemoryCache{}, c)
		_ = c.Close()
	})

	t.Run("none", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = BackendNone
		c, err := New(cfg)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = "memcached"
		_, err := New(cfg)
		assert.Error(t, err)
	})
}

func TestDetectKey(t *testing.T) {
	a := DetectKey("//o/o", 3, 0)
	assert.Equal(t, a, DetectKey("//o/o", 3, 0))
	assert.NotEqual(t, a, DetectKey("//o/o", 1, 0))
	assert.NotEqual(t, a, DetectKey("//o/o", 3, 5))
	assert.NotEqual(t, a, DetectKey("//o/o/", 3, 0))
	assert.Len(t, a, len("detect:")+32)
}
