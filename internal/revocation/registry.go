// Package revocation tracks logged-out subjects and password-change
// watermarks so that otherwise-valid tokens can be rejected.
package revocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/phananhtu/authcore/internal/model"
)

const (
	blacklistKeyPrefix = "TOKEN_BLACK_LIST_"
	watermarkKeyPrefix = "TOKEN_IAT_AVAILABLE_"

	blacklistSentinel = "1"
)

// Registry is the blacklist of logged-out subject handles plus the
// per-account password-change watermark.
type Registry struct {
	cache model.Cache
}

// NewRegistry creates a Registry on the given key-value store.
func NewRegistry(cache model.Cache) *Registry {
	return &Registry{cache: cache}
}

// Blacklist marks a subject handle as logged out for ttl. Blacklisting
// an already-blacklisted subject succeeds.
func (r *Registry) Blacklist(ctx context.Context, subject string, ttl time.Duration) error {
	if err := r.cache.Set(ctx, blacklistKeyPrefix+subject, []byte(blacklistSentinel), ttl); err != nil {
		return fmt.Errorf("failed to blacklist subject: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether the subject handle has been logged out.
func (r *Registry) IsBlacklisted(ctx context.Context, subject string) (bool, error) {
	_, err := r.cache.Get(ctx, blacklistKeyPrefix+subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}

// SetPasswordChangedAt records the moment of a password change. Tokens
// issued before this watermark are revoked.
func (r *Registry) SetPasswordChangedAt(ctx context.Context, accountID uuid.UUID, changedAt time.Time, ttl time.Duration) error {
	value := strconv.FormatInt(changedAt.Unix(), 10)
	if err := r.cache.Set(ctx, watermarkKeyPrefix+accountID.String(), []byte(value), ttl); err != nil {
		return fmt.Errorf("failed to set password-change watermark: %w", err)
	}
	return nil
}

// GetPasswordChangedAt returns the password-change watermark for an
// account. The second return is false when no watermark is recorded.
func (r *Registry) GetPasswordChangedAt(ctx context.Context, accountID uuid.UUID) (time.Time, bool, error) {
	data, err := r.cache.Get(ctx, watermarkKeyPrefix+accountID.String())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to get password-change watermark: %w", err)
	}

	unix, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse password-change watermark: %w", err)
	}
	return time.Unix(unix, 0), true, nil
}
