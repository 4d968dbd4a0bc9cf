package infrastructure

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCacheSetGet(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Set("revenue", 1250.50, 5*time.Minute)

	value, found := cache.Get("revenue")
	assert.True(t, found)
	assert.Equal(t, 1250.50, value)

	_, found = cache.Get("missing")
	assert.False(t, found)
}

func TestInMemoryCacheExpiration(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Set("ephemeral", "value", -time.Second)

	_, found := cache.Get("ephemeral")
	assert.False(t, found, "expired entries are invisible")
	assert.False(t, cache.Has("ephemeral"))
}

func TestInMemoryCacheDeleteAndClear(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Set("a", 1, time.Minute)
	cache.Set("b", 2, time.Minute)

	cache.Delete("a")
	assert.False(t, cache.Has("a"))
	assert.True(t, cache.Has("b"))

	cache.Clear()
	assert.False(t, cache.Has("b"))
}

func TestShardedCacheRouting(t *testing.T) {
	cache := NewShardedCache(16)

	for i := 0; i < 100; i++ {
		cache.Set(fmt.Sprintf("key%d", i), i, time.Minute)
	}
	for i := 0; i < 100; i++ {
		value, found := cache.Get(fmt.Sprintf("key%d", i))
		assert.True(t, found)
		assert.Equal(t, i, value)
	}

	cache.Clear()
	assert.False(t, cache.Has("key0"))
}

func TestShardedCacheRequiresPowerOfTwo(t *testing.T) {
	assert.Panics(t, func() { NewShardedCache(12) })
	assert.Panics(t, func() { NewShardedCache(0) })
	assert.NotPanics(t, func() { NewShardedCache(8) })
}

func TestCacheKeyBuilder(t *testing.T) {
	key := NewCacheKeyBuilder().
		Add("stats").
		Add("top").
		AddInt(5).
		Build()

	assert.Equal(t, "stats:top:5", key)
	assert.Equal(t, "", NewCacheKeyBuilder().Build())
}

func BenchmarkShardedCacheGetConcurrent(b *testing.B) {
	cache := NewShardedCache(16)
	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("key%d", i), "value", 5*time.Minute)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			i++
			_, _ = cache.Get(fmt.Sprintf("key%d", i%1000))
		}
	})
}
