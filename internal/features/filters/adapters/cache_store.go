package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/features/filters/domain"
	"storefront-gateway/internal/features/filters/ports"
)

const (
	keyPrefix = "filters:"

	// DefaultTimeout bounds every cache call so an unreachable Redis fails the request
	// instead of stalling it through the client's dial retries.
	DefaultTimeout = 500 * time.Millisecond
)

// CacheStore keeps filter snapshots as JSON in the shared cache.
type CacheStore struct {
	cache   cache.Cache
	ttl     time.Duration
	timeout time.Duration
}

// NewCacheStore creates a store whose snapshots expire ttl after their last write.
// A zero ttl keeps snapshots forever.
func NewCacheStore(c cache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl, timeout: DefaultTimeout}
}

// WithTimeout replaces the per-call deadline. A non-positive d disables it.
func (s *CacheStore) WithTimeout(d time.Duration) *CacheStore {
	s.timeout = d
	return s
}

func (s *CacheStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

var _ ports.StateStore = (*CacheStore)(nil)

// Load implements StateStore.
func (s *CacheStore) Load(ctx context.Context, sessionID string) (domain.State, bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	raw, err := s.cache.Get(ctx, keyPrefix+sessionID)
	if errors.Is(err, cache.ErrKeyNotFound) {
		return domain.NewState(), false, nil
	}
	if err != nil {
		return domain.State{}, false, err
	}

	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.State{}, false, fmt.Errorf("failed to decode filter state for %s: %w", sessionID, err)
	}
	return state, true, nil
}

// Save implements StateStore.
func (s *CacheStore) Save(ctx context.Context, sessionID string, state domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode filter state: %w", err)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.cache.Set(ctx, keyPrefix+sessionID, raw, s.ttl)
}

// Delete implements StateStore.
func (s *CacheStore) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.cache.Delete(ctx, keyPrefix+sessionID)
}
