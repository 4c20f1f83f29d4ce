package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware installs the global middleware chain: request IDs, access
// logging through zap, panic recovery, CORS and a body size cap.
func SetupMiddleware(e *echo.Echo, cfg *Config) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", redactToken(v.URI),
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, "error", v.Error.Error())...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("1M"))
}

// AllowedOrigins splits CORS_ORIGINS, defaulting to any origin.
func (c *Config) AllowedOrigins() []string {
	if c.CORSOrigins == "" {
		return []string{"*"}
	}
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// redactToken masks a `token` query parameter so session tokens passed on
// websocket upgrades never reach the access log.
func redactToken(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.RawQuery == "" {
		return uri
	}
	q := u.Query()
	if !q.Has("token") {
		return uri
	}
	q.Set("token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
