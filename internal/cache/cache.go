package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache is the key/value store used for short-lived gateway state.
type Cache interface {
	Ping(ctx context.Context) error

	// Set stores a value with the given TTL. A zero TTL keeps the key forever.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get returns ErrNotFound for missing keys.
	Get(ctx context.Context, key string) (string, error)

	// Del is a no-op if the key does not exist.
	Del(ctx context.Context, key string) error
}
