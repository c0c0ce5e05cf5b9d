package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Pinger is the database liveness check used by /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	StatusHandler *StatusHandler
	AgentHandler  *AgentHandler
	MarketHandler *MarketHandler
	DB            Pinger
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for the liveness probe to reduce noise
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		dbStatus := "healthy"
		if err := config.DB.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(nethttp.StatusOK, map[string]string{
			"status":    "healthy",
			"service":   "rate-scout-api",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API group
	api := e.Group("/api")

	api.GET("/", config.StatusHandler.Root)
	api.POST("/status", config.StatusHandler.CreateStatusCheck)
	api.GET("/status", config.StatusHandler.ListStatusChecks)

	api.POST("/chat", config.AgentHandler.Chat)
	api.POST("/search", config.AgentHandler.Search)
	api.GET("/agents/capabilities", config.AgentHandler.Capabilities)

	api.GET("/funding-arbitrage", config.MarketHandler.GetFundingArbitrage)
	api.GET("/funding-arbitrage/history", config.MarketHandler.GetScanHistory)
	api.POST("/scan/trigger", config.MarketHandler.TriggerScan)
}
