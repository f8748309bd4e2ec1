package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/internal/metrics"
	"github.com/satriahrh/suara/usecase"
)

// NewServer creates the echo instance with middleware and routes installed.
// Request bodies above maxBodySize (e.g. "16M") are rejected with 413.
func NewServer(maxBodySize string, service *usecase.ConversionService, m *metrics.Metrics, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(maxBodySize))

	InitRoutes(e, service, m, logger)
	return e
}
