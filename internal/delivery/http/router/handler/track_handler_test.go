package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/config"
	"pulse/internal/delivery/http/response"
	"pulse/internal/domain/entity"
	"pulse/internal/usecase/impl"
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

func newTrackHandler(source *stubTrackSource, defaultLimit int) *TrackHandler {
	cfg := &config.Config{Music: &config.MusicConfig{DefaultLimit: defaultLimit}}
	uc := impl.NewTrackFeedService(source, slog.New(slog.DiscardHandler))

	return NewTrackHandler(uc, cfg, slog.New(slog.DiscardHandler))
}

func TestTrackHandler_RecentTracks_FallbackStays200(t *testing.T) {
	source := &stubTrackSource{hasCredentials: true, err: assert.AnError}
	handler := newTrackHandler(source, 6)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/music/recent-tracks", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.RecentTracks(e.NewContext(req, rec)))

	var body response.TracksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, entity.SourceMock, body.Source)
	assert.NotEmpty(t, body.Error)
	assert.Len(t, body.Tracks, 2)
}

func TestTrackHandler_NowPlaying_Active(t *testing.T) {
	source := &stubTrackSource{
		hasCredentials: true,
		nowPlaying:     &entity.TrackRecord{ID: "t1", Name: "Circles", IsCurrentlyPlaying: true},
	}
	handler := newTrackHandler(source, 6)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/music/now-playing", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.NowPlaying(e.NewContext(req, rec)))

	var body response.NowPlayingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Track)
	assert.Equal(t, "Circles", body.Track.Name)
	assert.Equal(t, entity.SourceLive, body.Source)
}

func TestTrackHandler_NowPlaying_Idle(t *testing.T) {
	source := &stubTrackSource{hasCredentials: true}
	handler := newTrackHandler(source, 6)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/music/now-playing", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.NowPlaying(e.NewContext(req, rec)))

	var body response.NowPlayingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Nil(t, body.Track)
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, HealthCheck(e.NewContext(req, rec)))

	var body response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Status)
	assert.False(t, body.Timestamp.IsZero())
}
