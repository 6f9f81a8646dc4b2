// Package handler contains the HTTP handlers for the aggregation API.
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

// GameHandler serves the games feed endpoint.
type GameHandler struct {
	uc           usecase.GameFeedUsecase
	logger       *slog.Logger
	defaultLimit int
}

// NewGameHandler is the constructor for GameHandler, injected by Fx.
func NewGameHandler(uc usecase.GameFeedUsecase, cfg *config.Config, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		uc:           uc,
		logger:       logger,
		defaultLimit: cfg.PSN.DefaultLimit,
	}
}

// RecentGames handles GET /api/ps5/recent-games. A malformed limit falls
// back to the configured default instead of rejecting the request.
func (h *GameHandler) RecentGames(c echo.Context) error {
	ctx := c.Request().Context()
	limit := util.ParseLimit(c.QueryParam("limit"), h.defaultLimit)

	feed := h.uc.RecentGames(ctx, limit)
	if feed.Diagnostic != nil {
		logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
		logger.Info("games feed degraded to mock data", slog.Any("cause", feed.Diagnostic))
	}

	return response.Games(c, feed.Records, feed.Source, feed.Diagnostic)
}
