package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/provider"
	"pulse/internal/usecase"
)

type stubTrackSource struct {
	hasCredentials bool
	records        []entity.TrackRecord
	nowPlaying     *entity.TrackRecord
	err            error
}

func (s *stubTrackSource) Name() string          { return "stub" }
func (s *stubTrackSource) Source() entity.Source { return entity.SourceLive }
func (s *stubTrackSource) HasCredentials() bool  { return s.hasCredentials }

func (s *stubTrackSource) FetchRecent(context.Context, int) ([]entity.TrackRecord, error) {
	return s.records, s.err
}

func (s *stubTrackSource) NowPlaying(context.Context) (*entity.TrackRecord, error) {
	return s.nowPlaying, s.err
}

func (s *stubTrackSource) MockRecords() []entity.TrackRecord {
	return []entity.TrackRecord{
		{ID: "mock-1", Name: "Live Session"},
		{ID: "mock-2", Name: "Nonstop"},
	}
}

func newTrackService(source provider.TrackSource) usecase.TrackFeedUsecase {
	return NewTrackFeedService(source, slog.New(slog.DiscardHandler))
}

func TestRecentTracksLive(t *testing.T) {
	t.Parallel()

	source := &stubTrackSource{
		hasCredentials: true,
		records: []entity.TrackRecord{
			{ID: "live-1", Name: "Circles"},
		},
	}

	feed := newTrackService(source).RecentTracks(context.Background(), 6)

	assert.Equal(t, entity.SourceLive, feed.Source)
	assert.NoError(t, feed.Diagnostic)
	require.Len(t, feed.Records, 1)
	assert.Equal(t, "Circles", feed.Records[0].Name)
}

func TestRecentTracksFetchErrorFallsBack(t *testing.T) {
	t.Parallel()

	source := &stubTrackSource{hasCredentials: true, err: assert.AnError}

	feed := newTrackService(source).RecentTracks(context.Background(), 6)

	assert.Equal(t, entity.SourceMock, feed.Source)
	assert.ErrorIs(t, feed.Diagnostic, assert.AnError)
	assert.Len(t, feed.Records, 2)
}

func TestRecentTracksWithoutCredentials(t *testing.T) {
	t.Parallel()

	source := &stubTrackSource{hasCredentials: false}

	feed := newTrackService(source).RecentTracks(context.Background(), 1)

	assert.Equal(t, entity.SourceMock, feed.Source)
	assert.ErrorIs(t, feed.Diagnostic, provider.ErrNoCredentials)
	assert.Len(t, feed.Records, 1)
}

func TestNowPlayingActive(t *testing.T) {
	t.Parallel()

	source := &stubTrackSource{
		hasCredentials: true,
		nowPlaying:     &entity.TrackRecord{ID: "live-1", Name: "Circles", IsCurrentlyPlaying: true},
	}

	track, tag, err := newTrackService(source).NowPlaying(context.Background())

	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, entity.SourceLive, tag)
	assert.Equal(t, "Circles", track.Name)
}

func TestNowPlayingIdle(t *testing.T) {
	t.Parallel()

	source := &stubTrackSource{hasCredentials: true}

	track, tag, err := newTrackService(source).NowPlaying(context.Background())

	require.NoError(t, err)
	assert.Nil(t, track)
	assert.Equal(t, entity.SourceLive, tag)
}

func TestNowPlayingProviderError(t *testing.T) {
	t.Parallel()

	source := &stubTrackSource{hasCredentials: true, err: assert.AnError}

	track, tag, err := newTrackService(source).NowPlaying(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, track)
	assert.Equal(t, entity.SourceMock, tag)
}
