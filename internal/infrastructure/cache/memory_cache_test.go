package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryResponseCache_SetとGet(t *testing.T) {
	c := NewInMemoryResponseCache()

	c.Set("key1", "value1", time.Minute)

	value, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", value)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestInMemoryResponseCache_期限切れエントリは取得できない(t *testing.T) {
	c := NewInMemoryResponseCache()

	c.Set("key1", "value1", -time.Second)

	_, ok := c.Get("key1")
	assert.False(t, ok)
}

func TestInMemoryResponseCache_Clear(t *testing.T) {
	c := NewInMemoryResponseCache()
	c.Set("key1", "value1", time.Minute)
	c.Set("key2", "value2", time.Minute)

	c.Clear()

	_, ok := c.Get("key1")
	assert.False(t, ok)
	_, ok = c.Get("key2")
	assert.False(t, ok)
}

func TestInMemoryResponseCache_CleanupExpired(t *testing.T) {
	c := NewInMemoryResponseCache()
	c.Set("expired1", "v", -time.Second)
	c.Set("expired2", "v", -time.Second)
	c.Set("alive", "v", time.Minute)

	removed := c.CleanupExpired()

	assert.Equal(t, 2, removed)
	_, ok := c.Get("alive")
	assert.True(t, ok)
}

func TestInMemoryResponseCache_並行アクセスに耐える(t *testing.T) {
	c := NewInMemoryResponseCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%10)
			c.Set(key, "value", time.Minute)
			c.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestBuildCacheKey_正規化された入力から同じキーが生成される(t *testing.T) {
	key1 := BuildCacheKey("trip_chat", "  Kyoto のおすすめは？ ")
	key2 := BuildCacheKey("trip_chat", "kyoto のおすすめは？")

	assert.Equal(t, key1, key2, "前後空白と大文字小文字は正規化される")
	assert.Contains(t, key1, "trip_chat:")

	key3 := BuildCacheKey("other_scope", "kyoto のおすすめは？")
	assert.NotEqual(t, key1, key3, "スコープが違えばキーも違う")
}
