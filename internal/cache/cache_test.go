package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(1 * time.Hour)
	defer cache.Close()
	ctx := context.Background()

	entry := &Entry{
		URL:     "https://example.com/landing",
		Content: "shockwave therapy equipment",
		Source:  "firecrawl",
	}

	if err := cache.Set(ctx, "test-key", entry); err != nil {
		t.Fatalf("Failed to set cache entry: %v", err)
	}

	retrieved, err := cache.Get(ctx, "test-key")
	if err != nil {
		t.Fatalf("Failed to get cache entry: %v", err)
	}

	if retrieved.Content != entry.Content {
		t.Errorf("Expected content '%s', got '%s'", entry.Content, retrieved.Content)
	}
	if retrieved.Key != "test-key" {
		t.Errorf("Expected key 'test-key', got '%s'", retrieved.Key)
	}
	if retrieved.AccessCount != 1 {
		t.Errorf("Expected access count 1, got %d", retrieved.AccessCount)
	}

	// Test Get non-existent key
	_, err = cache.Get(ctx, "non-existent")
	if err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	cache := NewMemoryCache(50 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "test-key", &Entry{Content: "text"}); err != nil {
		t.Fatalf("Failed to set cache entry: %v", err)
	}

	if _, err := cache.Get(ctx, "test-key"); err != nil {
		t.Fatalf("Expected entry immediately after setting, got %v", err)
	}

	// Wait for expiration
	time.Sleep(100 * time.Millisecond)

	if _, err := cache.Get(ctx, "test-key"); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after expiration, got %v", err)
	}
}

func TestMemoryCacheZeroDurationNeverHits(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", &Entry{Content: "text"}); err != nil {
		t.Fatalf("Failed to set cache entry: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss with zero duration, got %v", err)
	}
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	cache := NewMemoryCache(1 * time.Hour)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cache.Set(ctx, fmt.Sprintf("test-key-%d", i), &Entry{Content: "text"}); err != nil {
			t.Fatalf("Failed to set cache entry %d: %v", i, err)
		}
	}

	if err := cache.Delete(ctx, "test-key-0"); err != nil {
		t.Fatalf("Failed to delete cache entry: %v", err)
	}
	if _, err := cache.Get(ctx, "test-key-0"); err != ErrCacheMiss {
		t.Errorf("Expected deleted key to miss, got %v", err)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear cache: %v", err)
	}

	stats, err := cache.GetStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", stats.TotalEntries)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	cache := NewMemoryCache(1 * time.Hour)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "test-key", &Entry{Content: "twelve bytes"}); err != nil {
		t.Fatalf("Failed to set cache entry: %v", err)
	}

	// Trigger a hit
	if _, err := cache.Get(ctx, "test-key"); err != nil {
		t.Fatalf("Failed to get cache entry: %v", err)
	}

	// Trigger a miss
	if _, err := cache.Get(ctx, "non-existent"); err != ErrCacheMiss {
		t.Errorf("Expected cache miss, got %v", err)
	}

	stats, err := cache.GetStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}

	if stats.TotalEntries != 1 {
		t.Errorf("Expected 1 total entry, got %d", stats.TotalEntries)
	}
	if stats.HitCount != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.HitCount)
	}
	if stats.MissCount != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.MissCount)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("Expected hit rate 0.5, got %f", stats.HitRate)
	}
	if stats.ContentBytes != 12 {
		t.Errorf("Expected 12 content bytes, got %d", stats.ContentBytes)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	if err := cache.Close(); err != nil {
		t.Fatalf("First close failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Second close failed: %v", err)
	}
}

func TestGenerateKey(t *testing.T) {
	key1 := GenerateKey("https://example.com/a")
	key2 := GenerateKey("https://example.com/a")
	key3 := GenerateKey("https://example.com/b")

	if key1 != key2 {
		t.Errorf("Expected stable keys, got '%s' and '%s'", key1, key2)
	}
	if key1 == key3 {
		t.Error("Expected different URLs to produce different keys")
	}
	if !strings.HasPrefix(key1, "page:") {
		t.Errorf("Expected 'page:' prefix, got '%s'", key1)
	}
}
