// Package response defines the wire shapes of the aggregation API. The
// feed endpoints answer 200 with success true even when a provider is
// down; provenance and diagnostics travel inside the body instead of the
// status code so a polling client never needs error branching.
package response

import (
	"net/http"
	"time"

	"pulse/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// GamesResponse is the envelope of the games feed endpoint.
type GamesResponse struct {
	Success   bool                `json:"success"`
	Games     []entity.GameRecord `json:"games"`
	Source    entity.Source       `json:"source"`
	Error     string              `json:"error,omitempty"`
	Message   string              `json:"message,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// TracksResponse is the envelope of the recent tracks endpoint.
type TracksResponse struct {
	Success   bool                 `json:"success"`
	Tracks    []entity.TrackRecord `json:"tracks"`
	Source    entity.Source        `json:"source"`
	Error     string               `json:"error,omitempty"`
	Message   string               `json:"message,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// NowPlayingResponse is the envelope of the now-playing endpoint. Track
// is null when nothing is playing.
type NowPlayingResponse struct {
	Success   bool                `json:"success"`
	Track     *entity.TrackRecord `json:"track"`
	Source    entity.Source       `json:"source"`
	Error     string              `json:"error,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// HealthResponse is the envelope of the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the envelope for requests that never reach a feed
// handler, unknown routes and oversized bodies.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Games writes a games feed envelope.
func Games(c echo.Context, games []entity.GameRecord, source entity.Source, diagnostic error) error {
	resp := GamesResponse{
		Success:   true,
		Games:     games,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	if diagnostic != nil {
		resp.Error = diagnostic.Error()
		resp.Message = "Live data unavailable, serving mock data"
	}

	return c.JSON(http.StatusOK, resp)
}

// Tracks writes a recent tracks envelope.
func Tracks(c echo.Context, tracks []entity.TrackRecord, source entity.Source, diagnostic error) error {
	resp := TracksResponse{
		Success:   true,
		Tracks:    tracks,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	if diagnostic != nil {
		resp.Error = diagnostic.Error()
		resp.Message = "Live data unavailable, serving mock data"
	}

	return c.JSON(http.StatusOK, resp)
}

// NowPlaying writes a now-playing envelope.
func NowPlaying(c echo.Context, track *entity.TrackRecord, source entity.Source, diagnostic error) error {
	resp := NowPlayingResponse{
		Success:   true,
		Track:     track,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	if diagnostic != nil {
		resp.Error = diagnostic.Error()
	}

	return c.JSON(http.StatusOK, resp)
}

// Error writes a non-feed error envelope.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Code:    statusCode,
		Message: message,
	})
}
