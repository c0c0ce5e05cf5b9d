package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/adapter"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// DefaultMinUSDOpenInterest is the $50M notional floor for arbitrage candidates
const DefaultMinUSDOpenInterest = 50_000_000

// SnapshotFetcher fetches a raw metaAndAssetCtxs snapshot
type SnapshotFetcher interface {
	FetchMetaAndAssetCtxs(ctx context.Context) (adapter.RawSnapshot, error)
}

// FundingService runs the funding arbitrage pipeline:
// fetch -> parse -> filter -> rank
type FundingService struct {
	client             SnapshotFetcher
	minUSDOpenInterest float64
}

// NewFundingService creates a FundingService. A non-positive threshold falls
// back to the $50M default.
func NewFundingService(client SnapshotFetcher, minUSDOpenInterest float64) *FundingService {
	if minUSDOpenInterest <= 0 {
		minUSDOpenInterest = DefaultMinUSDOpenInterest
	}
	return &FundingService{
		client:             client,
		minUSDOpenInterest: minUSDOpenInterest,
	}
}

// universeEntry is one symbol descriptor from the meta universe
type universeEntry struct {
	Name string `json:"name"`
}

// assetCtx holds one symbol's numeric fields. Hyperliquid serializes them as
// strings and may omit or null any of them.
type assetCtx struct {
	MarkPx       *string `json:"markPx"`
	Funding      *string `json:"funding"`
	OpenInterest *string `json:"openInterest"`
	Premium      *string `json:"premium"`
	DayNtlVlm    *string `json:"dayNtlVlm"`
	PrevDayPx    *string `json:"prevDayPx"`
}

// floatOrZero converts a string-or-missing field to float64. Absent, empty
// and null all coerce to 0; a non-numeric string is an error so the caller
// can drop that one record.
func floatOrZero(s *string) (float64, error) {
	if s == nil || *s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(*s, 64)
}

// ParseMarkets decodes a raw snapshot into market records. Contexts pair
// positionally with universe entries; surplus contexts are ignored. A
// malformed record is skipped with a warning and never aborts the batch,
// but a snapshot whose top-level elements do not decode is an error.
func (s *FundingService) ParseMarkets(snapshot adapter.RawSnapshot) ([]*domain.MarketRecord, error) {
	markets := []*domain.MarketRecord{}

	if len(snapshot) < 2 {
		return markets, nil
	}

	var meta struct {
		Universe []universeEntry `json:"universe"`
	}
	if err := json.Unmarshal(snapshot[0], &meta); err != nil {
		return nil, fmt.Errorf("failed to decode universe: %w", err)
	}

	var ctxs []assetCtx
	if err := json.Unmarshal(snapshot[1], &ctxs); err != nil {
		return nil, fmt.Errorf("failed to decode asset contexts: %w", err)
	}

	for i, ac := range ctxs {
		if i >= len(meta.Universe) {
			break
		}
		symbol := meta.Universe[i].Name

		record, err := buildRecord(symbol, ac)
		if err != nil {
			log.Printf("[WARN] Error parsing data for %s: %v", symbol, err)
			continue
		}
		markets = append(markets, record)
	}

	return markets, nil
}

func buildRecord(symbol string, ac assetCtx) (*domain.MarketRecord, error) {
	markPrice, err := floatOrZero(ac.MarkPx)
	if err != nil {
		return nil, err
	}
	fundingRate, err := floatOrZero(ac.Funding)
	if err != nil {
		return nil, err
	}
	openInterest, err := floatOrZero(ac.OpenInterest)
	if err != nil {
		return nil, err
	}
	premium, err := floatOrZero(ac.Premium)
	if err != nil {
		return nil, err
	}
	dayVolume, err := floatOrZero(ac.DayNtlVlm)
	if err != nil {
		return nil, err
	}
	prevDayPrice, err := floatOrZero(ac.PrevDayPx)
	if err != nil {
		return nil, err
	}

	priceChange24h := 0.0
	if prevDayPrice > 0 && markPrice > 0 {
		priceChange24h = (markPrice - prevDayPrice) / prevDayPrice * 100
	}

	return &domain.MarketRecord{
		Symbol:         symbol,
		MarkPrice:      markPrice,
		FundingRate:    fundingRate,
		OpenInterest:   openInterest,
		Premium:        premium,
		DayVolume:      dayVolume,
		PriceChange24h: priceChange24h,
	}, nil
}

// FilterAndRank keeps records whose USD notional open interest strictly
// exceeds minUSDOpenInterest, sorts them by funding rate descending (stable,
// ties keep input order) and returns the top record, or nil when nothing
// survives the filter. Pure, no I/O.
func FilterAndRank(records []*domain.MarketRecord, minUSDOpenInterest float64) ([]*domain.MarketRecord, *domain.MarketRecord) {
	filtered := []*domain.MarketRecord{}
	for _, r := range records {
		if r.USDOpenInterest() > minUSDOpenInterest {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].FundingRate > filtered[j].FundingRate
	})

	if len(filtered) == 0 {
		return filtered, nil
	}
	return filtered, filtered[0]
}

// GetArbitrageOpportunities runs the whole pipeline. The report is always
// well-formed: failures anywhere produce success=false with empty lists and
// zero counts instead of an error escaping this boundary.
func (s *FundingService) GetArbitrageOpportunities(ctx context.Context) *domain.ArbitrageReport {
	now := time.Now().UTC()

	snapshot, err := s.client.FetchMetaAndAssetCtxs(ctx)
	if err != nil {
		log.Printf("[ERROR] Funding arbitrage fetch failed: %v", err)
		return &domain.ArbitrageReport{
			Success:     false,
			Markets:     []*domain.MarketRecord{},
			LastUpdated: now,
			Error:       err.Error(),
		}
	}

	allMarkets, err := s.ParseMarkets(snapshot)
	if err != nil {
		log.Printf("[ERROR] Funding arbitrage parse failed: %v", err)
		return &domain.ArbitrageReport{
			Success:     false,
			Markets:     []*domain.MarketRecord{},
			LastUpdated: now,
			Error:       err.Error(),
		}
	}

	filtered, highest := FilterAndRank(allMarkets, s.minUSDOpenInterest)

	log.Printf("[OK] Found %d markets with >$%.0fM USD open interest out of %d total",
		len(filtered), s.minUSDOpenInterest/1_000_000, len(allMarkets))

	return &domain.ArbitrageReport{
		Success:            true,
		Markets:            filtered,
		TotalMarkets:       len(allMarkets),
		FilteredMarkets:    len(filtered),
		HighestFundingRate: highest,
		LastUpdated:        now,
	}
}
