package handler

import (
	"net/http"
	"time"

	"pulse/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, response.HealthResponse{
		Status:    "ok",
		Service:   "pulse",
		Timestamp: time.Now().UTC(),
	})
}
