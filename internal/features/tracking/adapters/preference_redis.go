package adapter

import (
	"context"
	"errors"
	"fmt"

	"fleet-tracker/internal/core/cache"
)

const autoTrackKeyPrefix = "autotrack:"

// RedisPreferenceStore persists the per-driver auto-tracking preference in
// the shared cache so it survives navigations and process restarts.
type RedisPreferenceStore struct {
	cache cache.Cache
}

// NewRedisPreferenceStore creates a preference store backed by the cache.
func NewRedisPreferenceStore(c cache.Cache) *RedisPreferenceStore {
	return &RedisPreferenceStore{
		cache: c,
	}
}

// AutoTrackingEnabled reads the preference for a driver; absent means false.
func (r *RedisPreferenceStore) AutoTrackingEnabled(ctx context.Context, driverID string) (bool, error) {
	data, err := r.cache.Get(ctx, autoTrackKeyPrefix+driverID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read auto-tracking preference: %w", err)
	}

	return string(data) == "1", nil
}

// SetAutoTracking writes the preference for a driver. No TTL; the policy
// resets it explicitly when a delivery completes.
func (r *RedisPreferenceStore) SetAutoTracking(ctx context.Context, driverID string, enabled bool) error {
	value := []byte("0")
	if enabled {
		value = []byte("1")
	}

	if err := r.cache.Set(ctx, autoTrackKeyPrefix+driverID, value, 0); err != nil {
		return fmt.Errorf("failed to save auto-tracking preference: %w", err)
	}

	return nil
}
