package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/configs"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/adapter"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/database"
	deliveryhttp "github.com/FenadoAI/fv2-rate-scout-60fuee/internal/delivery/http"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/infra"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/repository"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	statusRepo := repository.NewStatusRepository(db)
	scanRepo := repository.NewScanRepository(db)

	// Initialize funding arbitrage pipeline
	hlClient := adapter.NewHyperliquidClient(cfg.Hyperliquid.APIURL)
	fundingService := service.NewFundingService(hlClient, cfg.Hyperliquid.MinOpenInterestUSD)

	// Initialize agent registry with lazily constructed engine bridges
	registry := service.NewAgentRegistry(func(kind domain.AgentKind) (domain.Agent, error) {
		return adapter.NewAgentBridge(cfg.AgentEngine.URL, kind)
	})

	// Agent engine health check (non-fatal)
	log.Println("Checking agent engine health...")
	if probe, err := adapter.NewAgentBridge(cfg.AgentEngine.URL, domain.AgentKindChat); err != nil {
		log.Printf("WARNING: Agent engine is not configured: %v", err)
	} else if err := probe.HealthCheck(ctx); err != nil {
		log.Printf("WARNING: Agent engine is not available: %v", err)
		log.Println("Chat and search endpoints will fail until the agent engine is running")
	} else {
		log.Println("[OK] Agent engine is healthy")
	}

	// Initialize funding scan scheduler
	scheduler := infra.NewScheduler(fundingService, scanRepo, cfg.Hyperliquid.ScanIntervalMinutes)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scan scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	deliveryhttp.SetupRoutes(e, &deliveryhttp.RouterConfig{
		StatusHandler: deliveryhttp.NewStatusHandler(statusRepo),
		AgentHandler:  deliveryhttp.NewAgentHandler(registry),
		MarketHandler: deliveryhttp.NewMarketHandler(fundingService, scanRepo, scheduler),
		DB:            db,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Rate Scout API starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Min USD open interest: $%.0f", cfg.Hyperliquid.MinOpenInterestUSD)

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}
