package domain

import (
	"time"

	"github.com/google/uuid"
)

// MarketRecord represents one perpetual market's snapshot from Hyperliquid
type MarketRecord struct {
	Symbol         string  `json:"symbol"`
	MarkPrice      float64 `json:"mark_price"`
	FundingRate    float64 `json:"funding_rate"`
	OpenInterest   float64 `json:"open_interest"`
	Premium        float64 `json:"premium"`
	DayVolume      float64 `json:"day_volume"`
	PriceChange24h float64 `json:"price_change_24h"`
}

// USDOpenInterest returns the notional open interest in USD terms
func (m *MarketRecord) USDOpenInterest() float64 {
	return m.OpenInterest * m.MarkPrice
}

// ArbitrageReport is the envelope returned by the funding arbitrage pipeline.
// It is always well-formed: on failure Success is false, the lists are empty,
// the counts are zero and Error carries the reason.
type ArbitrageReport struct {
	Success            bool            `json:"success"`
	Markets            []*MarketRecord `json:"markets"`
	TotalMarkets       int             `json:"total_markets"`
	FilteredMarkets    int             `json:"filtered_markets"`
	HighestFundingRate *MarketRecord   `json:"highest_funding_rate"`
	LastUpdated        time.Time       `json:"last_updated"`
	Error              string          `json:"error,omitempty"`
}

// ScanResult is a persisted summary of one scheduled pipeline run
type ScanResult struct {
	ID              uuid.UUID `json:"id"`
	TotalMarkets    int       `json:"total_markets"`
	FilteredMarkets int       `json:"filtered_markets"`
	TopSymbol       string    `json:"top_symbol"`
	TopFundingRate  float64   `json:"top_funding_rate"`
	CreatedAt       time.Time `json:"created_at"`
}
