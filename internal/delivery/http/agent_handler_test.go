package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/delivery/http/dto"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

type stubDispatcher struct {
	result *domain.AgentResult
	caps   []string
	err    error

	gotKind     domain.AgentKind
	gotMessage  string
	gotUseTools bool
}

func (d *stubDispatcher) Dispatch(ctx context.Context, kind domain.AgentKind, message string, useTools bool) (*domain.AgentResult, []string, error) {
	d.gotKind = kind
	d.gotMessage = message
	d.gotUseTools = useTools
	return d.result, d.caps, d.err
}

func (d *stubDispatcher) Capabilities(kind domain.AgentKind) ([]string, error) {
	return d.caps, d.err
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestChat_Success(t *testing.T) {
	d := &stubDispatcher{
		result: &domain.AgentResult{
			Success:  true,
			Content:  "hi there",
			Metadata: map[string]interface{}{"model": "m"},
		},
		caps: []string{"conversation"},
	}
	h := NewAgentHandler(d)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":"hello","agent_type":"chat"}`)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp dto.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if !resp.Success || resp.Response != "hi there" || resp.AgentType != "chat" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Capabilities) != 1 {
		t.Errorf("capabilities = %v", resp.Capabilities)
	}
	if d.gotUseTools {
		t.Error("chat endpoint must not enable tools")
	}
}

func TestChat_DefaultsToKindChat(t *testing.T) {
	d := &stubDispatcher{result: &domain.AgentResult{Success: true}, caps: []string{}}
	h := NewAgentHandler(d)

	postJSON(t, h.Chat, "/api/chat", `{"message":"hello"}`)

	if d.gotKind != domain.AgentKindChat {
		t.Errorf("kind = %q, want chat", d.gotKind)
	}
}

func TestChat_UnknownKind(t *testing.T) {
	d := &stubDispatcher{}
	h := NewAgentHandler(d)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":"hello","agent_type":"oracle"}`)

	var resp dto.ChatResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error == "" {
		t.Error("Error should name the bad agent type")
	}
}

func TestChat_DispatchErrorBecomesFailureEnvelope(t *testing.T) {
	d := &stubDispatcher{err: errors.New("failed to initialize chat agent: engine unreachable")}
	h := NewAgentHandler(d)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":"hello","agent_type":"chat"}`)

	// Errors never surface as transport errors
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp dto.ChatResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(resp.Error, "engine unreachable") {
		t.Errorf("Error = %q, want the dispatch error message", resp.Error)
	}
	if resp.Capabilities == nil {
		t.Error("Capabilities should be an empty list, not null")
	}
}

func TestSearch_Success(t *testing.T) {
	d := &stubDispatcher{
		result: &domain.AgentResult{
			Success:  true,
			Content:  "summary of findings",
			Metadata: map[string]interface{}{"tools_used": float64(4)},
		},
		caps: []string{"web_search"},
	}
	h := NewAgentHandler(d)

	rec := postJSON(t, h.Search, "/api/search", `{"query":"funding rates","max_results":3}`)

	var resp dto.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}

	if !resp.Success || resp.Query != "funding rates" || resp.Summary != "summary of findings" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.SourcesCount != 4 {
		t.Errorf("SourcesCount = %d, want 4", resp.SourcesCount)
	}

	if d.gotKind != domain.AgentKindSearch {
		t.Errorf("kind = %q, want search", d.gotKind)
	}
	if !d.gotUseTools {
		t.Error("search must run with tools enabled")
	}
	if !strings.Contains(d.gotMessage, "funding rates") {
		t.Errorf("prompt = %q, should embed the query", d.gotMessage)
	}
}

func TestSearch_AgentFailure(t *testing.T) {
	d := &stubDispatcher{
		result: &domain.AgentResult{Success: false, Error: "rate limited"},
		caps:   []string{"web_search"},
	}
	h := NewAgentHandler(d)

	rec := postJSON(t, h.Search, "/api/search", `{"query":"x"}`)

	var resp dto.SearchResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error != "rate limited" {
		t.Errorf("Error = %q, want the agent's error", resp.Error)
	}
	if resp.SourcesCount != 0 || resp.Summary != "" {
		t.Errorf("failure envelope should be empty: %+v", resp)
	}
}

func TestCapabilities(t *testing.T) {
	d := &stubDispatcher{caps: []string{"a", "b"}}
	h := NewAgentHandler(d)

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/agents/capabilities", nil)
	rec := httptest.NewRecorder()
	if err := h.Capabilities(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp dto.CapabilitiesResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Success {
		t.Fatalf("Success = false, error = %q", resp.Error)
	}
	if len(resp.Capabilities["chat_agent"]) != 2 || len(resp.Capabilities["search_agent"]) != 2 {
		t.Errorf("capabilities = %v", resp.Capabilities)
	}
}

func TestCapabilities_Error(t *testing.T) {
	d := &stubDispatcher{err: errors.New("no engine")}
	h := NewAgentHandler(d)

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/agents/capabilities", nil)
	rec := httptest.NewRecorder()
	if err := h.Capabilities(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp dto.CapabilitiesResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success || resp.Error == "" {
		t.Errorf("resp = %+v, want failure envelope", resp)
	}
}
