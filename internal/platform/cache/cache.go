// Package cache stores small JSON-encoded read models (tag and ingredient
// listings) either in a shared redis instance or in an in-process LRU.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Cache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

type Options struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
	Size          int
}

// New returns a redis-backed cache when RedisAddr is set and an LRU otherwise.
func New(ctx context.Context, log *logger.Logger, opts Options) (Cache, error) {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if strings.TrimSpace(opts.RedisAddr) != "" {
		c, err := NewRedis(ctx, log, opts)
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
		return c, nil
	}
	return NewLRU(log, opts)
}

type noop struct{}

// Noop never stores anything.
func Noop() Cache { return noop{} }

func (noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noop) Set(context.Context, string, any) error         { return nil }
func (noop) DeletePrefix(context.Context, string) error     { return nil }
func (noop) Close() error                                   { return nil }
