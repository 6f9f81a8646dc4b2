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

type stubGameSource struct {
	hasCredentials bool
	records        []entity.GameRecord
	err            error
	fetchCalls     int
}

func (s *stubGameSource) Name() string          { return "stub" }
func (s *stubGameSource) Source() entity.Source { return entity.SourceLive }
func (s *stubGameSource) HasCredentials() bool  { return s.hasCredentials }

func (s *stubGameSource) FetchRecent(context.Context, int) ([]entity.GameRecord, error) {
	s.fetchCalls++

	return s.records, s.err
}

func (s *stubGameSource) MockRecords() []entity.GameRecord {
	return []entity.GameRecord{
		{ID: "mock-a", Name: "Mock Game A"},
		{ID: "mock-b", Name: "Mock Game B"},
		{ID: "mock-c", Name: "Mock Game C"},
	}
}

func newGameService(source provider.GameSource) usecase.GameFeedUsecase {
	return NewGameFeedService(source, slog.New(slog.DiscardHandler))
}

func TestRecentGamesLive(t *testing.T) {
	t.Parallel()

	source := &stubGameSource{
		hasCredentials: true,
		records: []entity.GameRecord{
			{ID: "live-1", Name: "Ghost of Tsushima"},
			{ID: "live-2", Name: "Bloodborne"},
		},
	}

	feed := newGameService(source).RecentGames(context.Background(), 3)

	assert.Equal(t, entity.SourceLive, feed.Source)
	assert.NoError(t, feed.Diagnostic)
	require.Len(t, feed.Records, 2)
	assert.Equal(t, "live-1", feed.Records[0].ID)
}

func TestRecentGamesWithoutCredentials(t *testing.T) {
	t.Parallel()

	source := &stubGameSource{hasCredentials: false}

	feed := newGameService(source).RecentGames(context.Background(), 2)

	assert.Equal(t, entity.SourceMock, feed.Source)
	assert.ErrorIs(t, feed.Diagnostic, provider.ErrNoCredentials)
	assert.Len(t, feed.Records, 2)
	// No credentials means no fetch attempt at all.
	assert.Zero(t, source.fetchCalls)
}

func TestRecentGamesFetchErrorFallsBack(t *testing.T) {
	t.Parallel()

	source := &stubGameSource{hasCredentials: true, err: assert.AnError}

	feed := newGameService(source).RecentGames(context.Background(), 3)

	assert.Equal(t, entity.SourceMock, feed.Source)
	assert.ErrorIs(t, feed.Diagnostic, assert.AnError)
	assert.Len(t, feed.Records, 3)
}

func TestRecentGamesEmptyResultFallsBack(t *testing.T) {
	t.Parallel()

	source := &stubGameSource{hasCredentials: true, records: []entity.GameRecord{}}

	feed := newGameService(source).RecentGames(context.Background(), 3)

	assert.Equal(t, entity.SourceMock, feed.Source)
	assert.ErrorIs(t, feed.Diagnostic, provider.ErrEmptyResult)
	assert.Len(t, feed.Records, 3)
}

func TestRecentGamesLimitBeyondDataset(t *testing.T) {
	t.Parallel()

	source := &stubGameSource{hasCredentials: false}

	feed := newGameService(source).RecentGames(context.Background(), 10)

	// min(limit, len) wins, never padding.
	assert.Len(t, feed.Records, 3)
}
