package usecase

import (
	"context"

	"pulse/internal/domain/entity"
)

// GameFeed is the result of a games aggregation: the records actually
// served, where they came from, and the upstream error when the mock
// fallback kicked in. Diagnostic is informational only; a feed is always
// servable.
type GameFeed struct {
	Records    []entity.GameRecord
	Source     entity.Source
	Diagnostic error
}

// TrackFeed is the music counterpart of GameFeed.
type TrackFeed struct {
	Records    []entity.TrackRecord
	Source     entity.Source
	Diagnostic error
}

// GameFeedUsecase defines the games aggregation use cases
type GameFeedUsecase interface {
	// RecentGames returns up to limit recently played titles. It never
	// fails: provider trouble degrades to the mock dataset with the cause
	// recorded in the feed's Diagnostic.
	RecentGames(ctx context.Context, limit int) GameFeed
}

// TrackFeedUsecase defines the music aggregation use cases
type TrackFeedUsecase interface {
	// RecentTracks returns up to limit recently played tracks with the
	// same degrade-to-mock guarantee as RecentGames.
	RecentTracks(ctx context.Context, limit int) TrackFeed

	// NowPlaying returns the currently playing track, or nil when the
	// player is idle or the provider cannot answer.
	NowPlaying(ctx context.Context) (*entity.TrackRecord, entity.Source, error)
}
