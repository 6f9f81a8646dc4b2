// Package provider defines the contracts for external activity providers.
// A provider wraps exactly one third-party API or HTML document and is the
// authority for its own mock fallback dataset.
package provider

import (
	"context"

	"pulse/internal/domain/entity"
)

// GameSource supplies recently played titles from one gaming provider.
type GameSource interface {
	// Name identifies the provider in logs and diagnostics.
	Name() string

	// Source reports the provenance tag for successful fetches.
	Source() entity.Source

	// HasCredentials reports whether the provider is configured well enough
	// to attempt a live call at all.
	HasCredentials() bool

	// FetchRecent returns up to limit recently played titles, most recent
	// first. It may fail; the caller owns the fallback decision.
	FetchRecent(ctx context.Context, limit int) ([]entity.GameRecord, error)

	// MockRecords returns the fixed fallback dataset for this provider.
	MockRecords() []entity.GameRecord
}

// TrackSource supplies listening history from one music provider.
type TrackSource interface {
	Name() string
	Source() entity.Source
	HasCredentials() bool

	// FetchRecent returns up to limit recently played tracks, most recent
	// first.
	FetchRecent(ctx context.Context, limit int) ([]entity.TrackRecord, error)

	// NowPlaying returns the track currently playing, or nil when nothing
	// is playing. Not every provider can answer this cheaply; providers
	// without a dedicated endpoint derive it from the head of the recent
	// list.
	NowPlaying(ctx context.Context) (*entity.TrackRecord, error)

	MockRecords() []entity.TrackRecord
}
