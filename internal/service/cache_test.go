package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinkCache_DisabledClientIsNoop(t *testing.T) {
	cache := NewLinkCache(nil)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "any")
	assert.False(t, ok)

	// Set and Invalidate must not panic without a backing client.
	expiry := time.Now().Add(time.Hour)
	cache.Set(ctx, "any", cachedLink{ID: 1, OriginalURL: "https://example.com"}, &expiry)
	cache.Invalidate(ctx, "any")
}
