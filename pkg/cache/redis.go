package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
}

// RedisCache stores entries in Redis and relies on key expiry for TTLs.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and pings it, retrying network failures.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := retry(ctx, func() error {
		return classify(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.prefix+key).Err())
}

func (c *RedisCache) Close() error { return c.client.Close() }

// classify wraps network failures in ErrUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
