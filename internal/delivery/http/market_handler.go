package http

import (
	"context"
	"log"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// ScanRunner triggers one funding scan outside the cron schedule
type ScanRunner interface {
	RunNow(ctx context.Context) error
}

// MarketHandler handles funding arbitrage requests
type MarketHandler struct {
	arbitrage domain.ArbitrageService
	scanRepo  domain.ScanRepository
	runner    ScanRunner
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(arbitrage domain.ArbitrageService, scanRepo domain.ScanRepository, runner ScanRunner) *MarketHandler {
	return &MarketHandler{
		arbitrage: arbitrage,
		scanRepo:  scanRepo,
		runner:    runner,
	}
}

// GetFundingArbitrage returns funding arbitrage opportunities from Hyperliquid,
// filtered to markets above the USD open interest threshold and sorted by
// funding rate
// GET /api/funding-arbitrage
func (h *MarketHandler) GetFundingArbitrage(c echo.Context) error {
	report := h.arbitrage.GetArbitrageOpportunities(c.Request().Context())
	return c.JSON(nethttp.StatusOK, report)
}

// GetScanHistory returns recent persisted scan summaries
// GET /api/funding-arbitrage/history
func (h *MarketHandler) GetScanHistory(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			return BadRequestResponse(c, "limit must be a positive integer up to 1000")
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.scanRepo.GetRecent(ctx, limit)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch scan history", err)
	}
	if results == nil {
		results = []*domain.ScanResult{}
	}

	return SuccessResponse(c, map[string]interface{}{
		"scans": results,
		"count": len(results),
	})
}

// TriggerScan runs a funding scan immediately in the background
// POST /api/scan/trigger
func (h *MarketHandler) TriggerScan(c echo.Context) error {
	log.Println("Manual funding scan triggered via API")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := h.runner.RunNow(ctx); err != nil {
			log.Printf("[ERROR] Manual funding scan failed: %v", err)
		}
	}()

	return c.JSON(nethttp.StatusAccepted, Response{
		Status:  "success",
		Message: "Funding scan triggered",
	})
}
