package handler

import (
	"log/slog"

	"pulse/config"
	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"
	"pulse/internal/util"

	"github.com/labstack/echo/v4"
)

// TrackHandler serves the music feed endpoints.
type TrackHandler struct {
	uc           usecase.TrackFeedUsecase
	logger       *slog.Logger
	defaultLimit int
}

// NewTrackHandler is the constructor for TrackHandler, injected by Fx.
func NewTrackHandler(uc usecase.TrackFeedUsecase, cfg *config.Config, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{
		uc:           uc,
		logger:       logger,
		defaultLimit: cfg.Music.DefaultLimit,
	}
}

// RecentTracks handles GET /api/music/recent-tracks.
func (h *TrackHandler) RecentTracks(c echo.Context) error {
	ctx := c.Request().Context()
	limit := util.ParseLimit(c.QueryParam("limit"), h.defaultLimit)

	feed := h.uc.RecentTracks(ctx, limit)
	if feed.Diagnostic != nil {
		logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
		logger.Info("music feed degraded to mock data", slog.Any("cause", feed.Diagnostic))
	}

	return response.Tracks(c, feed.Records, feed.Source, feed.Diagnostic)
}

// NowPlaying handles GET /api/music/now-playing. An idle player and a
// failing provider both answer 200 with a null track.
func (h *TrackHandler) NowPlaying(c echo.Context) error {
	ctx := c.Request().Context()

	track, source, err := h.uc.NowPlaying(ctx)
	if err != nil {
		logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
		logger.Info("now playing lookup degraded", slog.Any("cause", err))
	}

	return response.NowPlaying(c, track, source, err)
}
