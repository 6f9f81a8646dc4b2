// Package token provides a small in-process cache for provider
// credentials that expire. The cache is the only shared mutable state in
// the service; it is safe for concurrent use and collapses simultaneous
// refreshes into a single upstream round-trip.
package token

import (
	"context"
	"sync"
	"time"

	"pulse/internal/errors"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc exchanges long-lived credentials for a fresh token value.
// The returned ttl overrides the cache default when positive; providers
// that report their own expiry (Spotify's expires_in) use that.
type RefreshFunc[T any] func(ctx context.Context) (value T, ttl time.Duration, err error)

// Cache holds one token value with an issue time and a validity window.
// The value is immutable and replaced atomically on refresh; two callers
// racing past expiry share a single refresh through singleflight.
type Cache[T any] struct {
	refresh    RefreshFunc[T]
	defaultTTL time.Duration
	now        func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	value     T
	issuedAt  time.Time
	ttl       time.Duration
	populated bool
}

// Option customizes a Cache.
type Option[T any] func(*Cache[T])

// WithClock injects a clock, used by tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) {
		c.now = now
	}
}

// NewCache creates a token cache around refresh with the given default
// validity window.
func NewCache[T any](refresh RefreshFunc[T], defaultTTL time.Duration, opts ...Option[T]) *Cache[T] {
	cache := &Cache[T]{
		refresh:    refresh,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// GetOrRefresh returns the cached token while it is inside its validity
// window, refreshing lazily otherwise. A refresh failure leaves any
// previous (expired) value untouched and returns the error.
func (c *Cache[T]) GetOrRefresh(ctx context.Context) (T, error) {
	if value, ok := c.current(); ok {
		return value, nil
	}

	// All concurrent callers that observe an expired token wait on one
	// refresh; the key is constant because the cache holds one credential.
	result, err, _ := c.group.Do("token", func() (any, error) {
		// Another waiter may have refreshed between the check and here.
		if value, ok := c.current(); ok {
			return value, nil
		}

		value, ttl, err := c.refresh(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "token refresh failed")
		}
		if ttl <= 0 {
			ttl = c.defaultTTL
		}

		c.mu.Lock()
		c.value = value
		c.issuedAt = c.now()
		c.ttl = ttl
		c.populated = true
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		var zero T

		return zero, err
	}

	return result.(T), nil
}

// Invalidate drops the cached value so the next call refreshes.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.populated = false
	c.mu.Unlock()
}

func (c *Cache[T]) current() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated || c.now().Sub(c.issuedAt) >= c.ttl {
		var zero T

		return zero, false
	}

	return c.value, true
}
