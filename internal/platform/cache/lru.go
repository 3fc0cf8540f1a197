package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type lruEntry struct {
	raw     []byte
	expires time.Time
}

type lruCache struct {
	log   *logger.Logger
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewLRU(log *logger.Logger, opts Options) (Cache, error) {
	inner, err := lru.New(opts.Size)
	if err != nil {
		return nil, err
	}
	cacheLog := log.With("service", "LRUCache")
	cacheLog.Info("Cache initialized", "backend", "lru", "size", opts.Size, "ttl", opts.TTL.String())
	return &lruCache{log: cacheLog, cache: inner, ttl: opts.TTL, now: time.Now}, nil
}

func (c *lruCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return false, nil
	}
	entry, ok := v.(lruEntry)
	if !ok || c.now().After(entry.expires) {
		c.cache.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, dst); err != nil {
		c.cache.Remove(key)
		return false, nil
	}
	return true, nil
}

// Values are stored encoded so callers never share mutable state with the cache.
func (c *lruCache) Set(_ context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.cache.Add(key, lruEntry{raw: raw, expires: c.now().Add(c.ttl)})
	return nil
}

func (c *lruCache) DeletePrefix(_ context.Context, prefix string) error {
	for _, k := range c.cache.Keys() {
		if s, ok := k.(string); ok && strings.HasPrefix(s, prefix) {
			c.cache.Remove(k)
		}
	}
	return nil
}

func (c *lruCache) Close() error {
	c.cache.Purge()
	return nil
}
