package token

import (
	"sync"
	"time"
)

// Cache is an in-process token cache with a bounded TTL. It is parameterized
// by the caller's notion of "now" so expiry is deterministic under test.
type Cache struct {
	mu        sync.Mutex
	token     string
	refreshed time.Time
	ttl       time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Get returns the cached token and whether it is still fresh.
func (c *Cache) Get(now time.Time) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || now.Sub(c.refreshed) >= c.ttl {
		return "", false
	}
	return c.token, true
}

// Refresh stores a freshly fetched token.
func (c *Cache) Refresh(now time.Time, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.refreshed = now
}
