package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// ResponseCache スコープ付きのレスポンスキャッシュ
// プロセス起動時に1度構築し、必要とするステージに参照で渡す
type ResponseCache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Clear()
}

// cacheEntry 値と有効期限を保持するエントリ
type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryResponseCache メモリ内キャッシュ実装
// 複数のプランニングリクエストからの同時読み書きに耐える。キャッシュは最適化であり
// 正確性の仕組みではないため、更新の競合で片方が失われても問題ない
type InMemoryResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewInMemoryResponseCache 新しいメモリ内キャッシュを作成
func NewInMemoryResponseCache() *InMemoryResponseCache {
	return &InMemoryResponseCache{
		entries: make(map[string]cacheEntry),
	}
}

// Get 期限切れでないキャッシュ値を取得する
func (c *InMemoryResponseCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set TTL付きでキャッシュ値を設定する
func (c *InMemoryResponseCache) Set(key string, value string, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Clear 全キャッシュ値を削除する
func (c *InMemoryResponseCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// CleanupExpired 期限切れエントリを削除し、削除件数を返す
func (c *InMemoryResponseCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// NormalizeInput キャッシュキー用に入力を正規化する（小文字化・前後空白除去）
func NormalizeInput(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// BuildCacheKey (スコープ, 正規化済み入力のダイジェスト) からキャッシュキーを生成する
func BuildCacheKey(scope, input string) string {
	digest := md5.Sum([]byte(NormalizeInput(input)))
	return scope + ":" + hex.EncodeToString(digest[:])
}
