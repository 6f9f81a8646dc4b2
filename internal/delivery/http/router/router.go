// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pulse/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	GameHandler  *handler.GameHandler
	TrackHandler *handler.TrackHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	gameHandler  *handler.GameHandler
	trackHandler *handler.TrackHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		gameHandler:  params.GameHandler,
		trackHandler: params.TrackHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/api/health", handler.HealthCheck)

	// Gaming feed routes
	gamesGroup := e.Group("/api/ps5")
	{
		gamesGroup.GET("/recent-games", r.gameHandler.RecentGames)
	}

	// Music feed routes
	musicGroup := e.Group("/api/music")
	{
		musicGroup.GET("/recent-tracks", r.trackHandler.RecentTracks)
		musicGroup.GET("/now-playing", r.trackHandler.NowPlaying)
	}
}
