package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness; pinger, when set, must also succeed.
func HealthCheck(pinger func() error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if pinger != nil {
			if err := pinger(); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status":  "unhealthy",
					"service": "plantly-api",
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "plantly-api",
		})
	}
}
