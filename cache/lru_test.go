package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/colorquant/resource"
)

func TestLRUBlobCache(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRUBlobCache(50, rc) // Cache limit 50, global limit 100
	ctx := context.Background()

	k1 := Key{Store: "s", Name: "a"}
	v1 := make([]byte, 20)

	k2 := Key{Store: "s", Name: "b"}
	v2 := make([]byte, 20)

	k3 := Key{Store: "s", Name: "c"}
	v3 := make([]byte, 20)

	c.Set(ctx, k1, v1)
	assert.Equal(t, int64(20), c.Size())
	assert.Equal(t, int64(20), rc.MemoryUsage())

	c.Set(ctx, k2, v2)
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	// Third insert exceeds the 50-byte cap and evicts the LRU entry.
	c.Set(ctx, k3, v3)
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	_, ok := c.Get(ctx, k1)
	assert.False(t, ok)

	got, ok := c.Get(ctx, k2)
	assert.True(t, ok)
	assert.Len(t, got, 20)

	_, ok = c.Get(ctx, k3)
	assert.True(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRUBlobCacheUpdate(t *testing.T) {
	c := NewLRUBlobCache(100, nil)
	ctx := context.Background()

	k := Key{Name: "cb"}
	c.Set(ctx, k, make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())

	c.Set(ctx, k, make([]byte, 30))
	assert.Equal(t, int64(30), c.Size())

	c.Set(ctx, k, make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())
}

func TestLRUBlobCacheOversizedItem(t *testing.T) {
	c := NewLRUBlobCache(10, nil)
	ctx := context.Background()

	c.Set(ctx, Key{Name: "big"}, make([]byte, 100))
	assert.Equal(t, int64(0), c.Size())

	_, ok := c.Get(ctx, Key{Name: "big"})
	assert.False(t, ok)
}

func TestLRUBlobCacheGlobalLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 30})
	c := NewLRUBlobCache(1000, rc)
	ctx := context.Background()

	c.Set(ctx, Key{Name: "a"}, make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())

	// Within cache capacity but over the global budget. Not cached.
	c.Set(ctx, Key{Name: "b"}, make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())

	_, ok := c.Get(ctx, Key{Name: "b"})
	assert.False(t, ok)
}

func TestLRUBlobCacheInvalidate(t *testing.T) {
	c := NewLRUBlobCache(100, nil)
	ctx := context.Background()

	c.Set(ctx, Key{Store: "x", Name: "a"}, make([]byte, 10))
	c.Set(ctx, Key{Store: "y", Name: "b"}, make([]byte, 10))

	c.Invalidate(func(key Key) bool { return key.Store == "x" })

	_, ok := c.Get(ctx, Key{Store: "x", Name: "a"})
	assert.False(t, ok)
	_, ok = c.Get(ctx, Key{Store: "y", Name: "b"})
	assert.True(t, ok)
	assert.Equal(t, int64(10), c.Size())
}
