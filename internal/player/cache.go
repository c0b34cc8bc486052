package player

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// handleCache maps external handles to player ids. Handles never change after
// creation, so an entry only goes stale when the player is deleted.
type handleCache struct {
	lru *expirable.LRU[string, int64]
}

func newHandleCache(size int, ttl time.Duration) *handleCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &handleCache{lru: expirable.NewLRU[string, int64](size, nil, ttl)}
}

func (c *handleCache) Get(handle string) (int64, bool) {
	return c.lru.Get(handle)
}

func (c *handleCache) Set(handle string, id int64) {
	c.lru.Add(handle, id)
}

func (c *handleCache) Invalidate(handle string) {
	c.lru.Remove(handle)
}

func (c *handleCache) Len() int {
	return c.lru.Len()
}
