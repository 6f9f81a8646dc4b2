package feedclient

import (
	"context"
	"sync"
	"time"
)

// State is the lifecycle phase of a Feed.
type State string

const (
	// StateIdle means no fetch has started yet.
	StateIdle State = "idle"

	// StateLoading means a fetch is in flight and no data has ever
	// arrived; refreshes of a ready feed keep showing the previous data
	// instead of flashing a spinner.
	StateLoading State = "loading"

	// StateReady means data is available.
	StateReady State = "ready"

	// StateError means the last fetch failed and no data has ever
	// arrived.
	StateError State = "error"
)

// FetchFunc loads one snapshot of feed data.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// DefaultPollInterval matches the cadence the feed data actually changes
// at; polling faster only burns provider quota.
const DefaultPollInterval = 60 * time.Second

// Feed wraps a fetch function with state tracking and polling. Safe for
// concurrent use; a renderer can snapshot while the poller refreshes.
type Feed[T any] struct {
	fetch FetchFunc[T]

	mu    sync.RWMutex
	state State
	data  T
	err   error
}

// NewFeed creates an idle feed around fetch.
func NewFeed[T any](fetch FetchFunc[T]) *Feed[T] {
	return &Feed[T]{
		fetch: fetch,
		state: StateIdle,
	}
}

// Snapshot returns the current state, the latest data, and the latest
// error. Data stays valid in StateReady even when err is set by a failed
// refresh.
func (f *Feed[T]) Snapshot() (State, T, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.state, f.data, f.err
}

// Refetch runs one fetch and updates the state machine. A retry out of
// StateError reports StateLoading while the fetch runs; a refresh out of
// StateReady keeps the stale data and StateReady, including when it
// fails.
func (f *Feed[T]) Refetch(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateReady {
		f.state = StateLoading
	}
	f.mu.Unlock()

	data, err := f.fetch(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = err
	if err != nil {
		if f.state != StateReady {
			f.state = StateError
		}

		return err
	}

	f.data = data
	f.state = StateReady

	return nil
}

// Poll fetches immediately and then on every interval tick until ctx is
// cancelled. Fetch errors do not stop the loop.
func (f *Feed[T]) Poll(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	_ = f.Refetch(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = f.Refetch(ctx)
		}
	}
}
