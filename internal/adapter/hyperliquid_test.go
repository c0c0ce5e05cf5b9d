package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchMetaAndAssetCtxs_Success(t *testing.T) {
	var gotBody map[string]string
	var gotMethod, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"universe":[{"name":"BTC"}]},[{"markPx":"50000"}]]`))
	}))
	defer srv.Close()

	c := NewHyperliquidClient(srv.URL)
	snapshot, err := c.FetchMetaAndAssetCtxs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != "POST" {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["type"] != "metaAndAssetCtxs" {
		t.Errorf(`body type = %q, want "metaAndAssetCtxs"`, gotBody["type"])
	}
	if len(snapshot) != 2 {
		t.Fatalf("snapshot elements = %d, want 2", len(snapshot))
	}
}

func TestFetchMetaAndAssetCtxs_NonOK(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewHyperliquidClient(srv.URL)
		_, err := c.FetchMetaAndAssetCtxs(context.Background())
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", status)
		}

		var upstream *UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("status %d: error type = %T, want *UpstreamError", status, err)
		}
		if upstream.StatusCode != status {
			t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, status)
		}
	}
}

func TestFetchMetaAndAssetCtxs_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewHyperliquidClient(srv.URL)
	if _, err := c.FetchMetaAndAssetCtxs(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
