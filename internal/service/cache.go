package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "shortlink:"
	defaultCacheTTL = 24 * time.Hour
	cacheOpTimeout  = 2 * time.Second
)

// cachedLink is the redirect entry stored in redis. The link ID rides
// along so visits on a cache hit can be recorded without a second lookup.
type cachedLink struct {
	ID          uint   `json:"id"`
	OriginalURL string `json:"original_url"`
}

// LinkCache is an optional redis cache-aside for the redirect hot path.
// All methods are no-ops when the client is nil, so the service runs
// unchanged without redis.
type LinkCache struct {
	client *redis.Client
}

// NewLinkCache wraps the given client; a nil client disables caching.
func NewLinkCache(client *redis.Client) *LinkCache {
	return &LinkCache{client: client}
}

// Get returns the cached entry for the code, or false on miss or when
// caching is disabled.
func (c *LinkCache) Get(ctx context.Context, shortCode string) (cachedLink, bool) {
	if c.client == nil {
		return cachedLink{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, cacheKeyPrefix+shortCode).Result()
	if err != nil {
		return cachedLink{}, false
	}
	var entry cachedLink
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return cachedLink{}, false
	}
	return entry, true
}

// Set stores the entry. The redis TTL is capped at the link's own expiry
// so a cached redirect can never outlive the link it serves.
func (c *LinkCache) Set(ctx context.Context, shortCode string, entry cachedLink, expiresAt *time.Time) {
	if c.client == nil {
		return
	}
	ttl := defaultCacheTTL
	if expiresAt != nil {
		remaining := time.Until(*expiresAt)
		if remaining <= 0 {
			return
		}
		if remaining < ttl {
			ttl = remaining
		}
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	c.client.Set(ctx, cacheKeyPrefix+shortCode, raw, ttl)
}

// Invalidate removes the cached entry after deactivation or deletion.
func (c *LinkCache) Invalidate(ctx context.Context, shortCode string) {
	if c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	c.client.Del(ctx, cacheKeyPrefix+shortCode)
}
