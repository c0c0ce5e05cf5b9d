package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UpstreamError reports a non-200 response from the Hyperliquid API
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("hyperliquid request failed: status=%d, body=%s", e.StatusCode, e.Body)
}

// RawSnapshot is the undecoded metaAndAssetCtxs payload. Element 0 holds the
// universe, element 1 the asset contexts; anything shorter parses to zero
// records downstream.
type RawSnapshot []json.RawMessage

// HyperliquidClient fetches perpetual market snapshots from the Hyperliquid info API
type HyperliquidClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHyperliquidClient creates a new Hyperliquid info API client
func NewHyperliquidClient(baseURL string) *HyperliquidClient {
	return &HyperliquidClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMetaAndAssetCtxs performs the single combined universe + asset
// contexts call. Returns the raw snapshot on HTTP 200, an UpstreamError
// carrying the status code otherwise. No retries.
func (c *HyperliquidClient) FetchMetaAndAssetCtxs(ctx context.Context) (RawSnapshot, error) {
	payload := map[string]string{"type": "metaAndAssetCtxs"}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Hyperliquid API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var snapshot RawSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return snapshot, nil
}
