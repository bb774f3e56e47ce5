package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const maxBodySize = "1K"

// NewRouter - routes of the analysis API.
func NewRouter(logger *slog.Logger) *echo.Echo {
	analysis := newAnalysisHandler(logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxBodySize))

	e.GET("/ping", pingHandler)

	api := e.Group("/api/v1")
	api.POST("/best-move", analysis.BestMove)
	api.POST("/evaluate", analysis.Evaluate)

	return e
}

// Start - serves the analysis API until ctx is canceled.
func Start(ctx context.Context, logger *slog.Logger, port string) error {
	log := logger.With("component", "rest")

	e := NewRouter(logger)
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
