package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type redisCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedis(ctx context.Context, log *logger.Logger, opts Options) (Cache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.RedisAddr,
		Password:    opts.RedisPassword,
		DB:          opts.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	cacheLog := log.With("service", "RedisCache")
	cacheLog.Info("Cache initialized", "backend", "redis", "addr", opts.RedisAddr, "ttl", opts.TTL.String())
	return &redisCache{log: cacheLog, rdb: rdb, ttl: opts.TTL}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// Stale or foreign payload; drop it and treat as a miss.
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}
