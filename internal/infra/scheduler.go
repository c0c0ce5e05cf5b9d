package infra

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// Scheduler periodically runs the funding arbitrage pipeline and persists a
// summary of each run
type Scheduler struct {
	cron            *cron.Cron
	arbitrage       domain.ArbitrageService
	scanRepo        domain.ScanRepository
	intervalMinutes int
}

// NewScheduler creates a new scheduler. intervalMinutes defaults to 15 when
// non-positive.
func NewScheduler(arbitrage domain.ArbitrageService, scanRepo domain.ScanRepository, intervalMinutes int) *Scheduler {
	if intervalMinutes <= 0 {
		intervalMinutes = 15
	}
	return &Scheduler{
		cron:            cron.New(),
		arbitrage:       arbitrage,
		scanRepo:        scanRepo,
		intervalMinutes: intervalMinutes,
	}
}

// Start registers the scan job and starts the cron loop
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("*/%d * * * *", s.intervalMinutes)

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.RunNow(ctx); err != nil {
			log.Printf("[ERROR] Scheduled funding scan failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[OK] Scheduler started (funding scan every %d minutes)", s.intervalMinutes)
	return nil
}

// RunNow executes one pipeline run and persists its summary
func (s *Scheduler) RunNow(ctx context.Context) error {
	report := s.arbitrage.GetArbitrageOpportunities(ctx)
	if !report.Success {
		return fmt.Errorf("funding scan failed: %s", report.Error)
	}

	result := &domain.ScanResult{
		ID:              uuid.New(),
		TotalMarkets:    report.TotalMarkets,
		FilteredMarkets: report.FilteredMarkets,
		CreatedAt:       report.LastUpdated,
	}
	if report.HighestFundingRate != nil {
		result.TopSymbol = report.HighestFundingRate.Symbol
		result.TopFundingRate = report.HighestFundingRate.FundingRate
	}

	if err := s.scanRepo.Save(ctx, result); err != nil {
		return fmt.Errorf("failed to persist scan result: %w", err)
	}

	log.Printf("[CRON] Scan stored: %d/%d markets above threshold, top %s (%.6f)",
		result.FilteredMarkets, result.TotalMarkets, result.TopSymbol, result.TopFundingRate)
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cron.Stop()
	log.Println("[OK] Scheduler stopped")
}
