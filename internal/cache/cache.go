package cache

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Cache interface defines cache operations
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// Entry represents fetched page text for one URL
type Entry struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	AccessedAt  time.Time `json:"accessed_at"`
	AccessCount int       `json:"access_count"`
}

// Stats represents cache statistics
type Stats struct {
	TotalEntries int     `json:"total_entries"`
	HitCount     int64   `json:"hit_count"`
	MissCount    int64   `json:"miss_count"`
	HitRate      float64 `json:"hit_rate"`
	ContentBytes int64   `json:"content_bytes"`
}

// Common cache errors
var ErrCacheMiss = errors.New("cache miss")

// MemoryCache implements in-memory cache
type MemoryCache struct {
	entries     map[string]*Entry
	mutex       sync.Mutex
	duration    time.Duration
	hitCount    int64
	missCount   int64
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewMemoryCache creates a new in-memory cache whose entries live for duration
func NewMemoryCache(duration time.Duration) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]*Entry),
		duration:    duration,
		stopCleanup: make(chan struct{}),
	}

	// Start cleanup goroutine
	go cache.cleanup()

	return cache
}

// Get retrieves an entry from cache
func (c *MemoryCache) Get(ctx context.Context, key string) (*Entry, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.missCount++
		return nil, ErrCacheMiss
	}

	now := time.Now()
	if !now.Before(entry.ExpiresAt) {
		delete(c.entries, key)
		c.missCount++
		return nil, ErrCacheMiss
	}

	entry.AccessedAt = now
	entry.AccessCount++
	c.hitCount++

	copied := *entry
	return &copied, nil
}

// Set stores an entry in cache
func (c *MemoryCache) Set(ctx context.Context, key string, entry *Entry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	stored := *entry
	stored.Key = key
	stored.CreatedAt = now
	stored.ExpiresAt = now.Add(c.duration)
	stored.AccessedAt = now
	stored.AccessCount = 0

	c.entries[key] = &stored
	return nil
}

// Delete removes an entry from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear removes all entries from cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*Entry)
	c.hitCount = 0
	c.missCount = 0
	return nil
}

// GetStats returns cache statistics
func (c *MemoryCache) GetStats(ctx context.Context) (*Stats, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stats := &Stats{
		TotalEntries: len(c.entries),
		HitCount:     c.hitCount,
		MissCount:    c.missCount,
	}

	if c.hitCount+c.missCount > 0 {
		stats.HitRate = float64(c.hitCount) / float64(c.hitCount+c.missCount)
	}

	for _, entry := range c.entries {
		stats.ContentBytes += int64(len(entry.Content))
	}

	return stats, nil
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
	return nil
}

// cleanup removes expired entries periodically
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

// cleanupExpired removes expired entries
func (c *MemoryCache) cleanupExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}
}

// GenerateKey generates a cache key for a page URL
func GenerateKey(url string) string {
	// Create MD5 hash for consistent key length
	hash := md5.Sum([]byte(url))
	return fmt.Sprintf("page:%x", hash)
}
