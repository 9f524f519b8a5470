package usecase

import (
	"fmt"
	"sync"
	"time"

	"transit-booking/internal/dto/response"
	"transit-booking/pkg/clock"
)

// searchCache menyimpan hasil pencarian jadwal per (origin, destination, date, time)
// dengan TTL tetap. Cache ini advisory: available seats di dalamnya adalah estimasi
// point-in-time, bukan jaminan reservasi. Tidak ada invalidation saat booking;
// staleness dibatasi TTL.
type searchCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clk     clock.Clock
	entries map[string]searchCacheEntry
}

type searchCacheEntry struct {
	result    *response.SearchDeparturesResponse
	expiresAt time.Time
}

func newSearchCache(ttl time.Duration, clk clock.Clock) *searchCache {
	return &searchCache{
		ttl:     ttl,
		clk:     clk,
		entries: make(map[string]searchCacheEntry),
	}
}

func searchCacheKey(originID, destinationID, date, afterTime string) string {
	return fmt.Sprintf("%s|%s|%s|%s", originID, destinationID, date, afterTime)
}

func (c *searchCache) Get(key string) (*response.SearchDeparturesResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.clk.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

func (c *searchCache) Set(key string, result *response.SearchDeparturesResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Lazy eviction: buang entry yang sudah kedaluwarsa saat menulis.
	now := c.clk.Now()
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = searchCacheEntry{
		result:    result,
		expiresAt: now.Add(c.ttl),
	}
}
