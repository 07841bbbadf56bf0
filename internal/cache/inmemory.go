package cache

import (
	"context"
	"strings"
	"time"

	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when no TTL is configured
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache *goCache.Cache
}

// NewInMemoryCache creates a cache whose entries expire after ttl.
// A negative ttl disables expiry.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	if ttl == 0 {
		ttl = DefaultExpiration
	}
	return &InMemoryCache{cache: goCache.New(ttl, DefaultCleanupInterval)}
}

// Initialize builds the process cache from the template cache TTL
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache", "ttl", cfg.Template.CacheTTL.String())
	return NewInMemoryCache(cfg.Template.CacheTTL)
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = goCache.DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
