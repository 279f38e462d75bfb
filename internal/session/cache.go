// Package session caches serialized account snapshots under subject
// handles. A snapshot exists exactly as long as a valid token chain is
// outstanding for that handle; absence means the session expired, not
// that the account is missing.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phananhtu/authcore/internal/model"
)

// Cache stores account snapshots with TTL bounded by the refresh-token
// lifetime. Entries are never deleted explicitly; logout blacklists the
// subject and the snapshot expires naturally.
type Cache struct {
	cache model.Cache
}

// NewCache creates a session cache on the given key-value store.
func NewCache(cache model.Cache) *Cache {
	return &Cache{cache: cache}
}

// Put serializes and stores the snapshot under the subject handle.
func (c *Cache) Put(ctx context.Context, subject string, snapshot model.AccountSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal account snapshot: %w", err)
	}
	if err := c.cache.Set(ctx, subject, data, ttl); err != nil {
		return fmt.Errorf("failed to store account snapshot: %w", err)
	}
	return nil
}

// Get loads the snapshot stored under the subject handle. Returns
// model.ErrNotFound when no session is outstanding for that handle.
func (c *Cache) Get(ctx context.Context, subject string) (model.AccountSnapshot, error) {
	data, err := c.cache.Get(ctx, subject)
	if err != nil {
		if err == model.ErrNotFound {
			return model.AccountSnapshot{}, model.ErrNotFound
		}
		return model.AccountSnapshot{}, fmt.Errorf("failed to load account snapshot: %w", err)
	}

	var snapshot model.AccountSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.AccountSnapshot{}, fmt.Errorf("failed to unmarshal account snapshot: %w", err)
	}
	return snapshot, nil
}
