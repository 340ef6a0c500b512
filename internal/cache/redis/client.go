package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/zensend-gateway/internal/cache"
)

// Client is a Redis-backed cache.Cache.
type Client struct {
	rdb *redis.Client
}

// New creates a client for the given address, password and DB number.
// No connection is made until the first command; call Ping to check reachability.
func New(addr, password string, dbNumber int) *Client {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNumber,
	}))
}

// NewFromClient wraps an existing go-redis client.
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get maps redis.Nil to cache.ErrNotFound.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrNotFound
	}
	return v, err
}

func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

var _ cache.Cache = (*Client)(nil)
