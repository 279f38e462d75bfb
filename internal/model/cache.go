package model

import (
	"context"
	"time"
)

// Cache is a key-value store with per-key TTL. Get returns ErrNotFound
// for absent or expired keys.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
}
