package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// Per-kind capability lists, advertised as-is to callers
var agentCapabilities = map[domain.AgentKind][]string{
	domain.AgentKindChat:   {"conversation", "analysis", "code_assistance", "general_help"},
	domain.AgentKindSearch: {"web_search", "summarization", "research", "fact_checking"},
}

// AgentBridge implements domain.Agent over HTTP against the external agent
// engine. Prompt construction, tool invocation and model calls all live on
// the engine side; this bridge only moves messages and result envelopes.
type AgentBridge struct {
	kind       domain.AgentKind
	baseURL    string
	httpClient *http.Client
}

// NewAgentBridge creates a bridge for one agent kind. Fails when the engine
// URL is missing so a broken config surfaces as an initialization error.
func NewAgentBridge(baseURL string, kind domain.AgentKind) (*AgentBridge, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("agent engine URL is required to construct %s agent", kind)
	}

	return &AgentBridge{
		kind:    kind,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // agent runs can take time
		},
	}, nil
}

// Kind returns the agent's kind
func (b *AgentBridge) Kind() domain.AgentKind {
	return b.kind
}

// Capabilities returns the static capability list for this agent kind
func (b *AgentBridge) Capabilities() []string {
	return agentCapabilities[b.kind]
}

// executeRequest is the request body the agent engine expects
type executeRequest struct {
	Message  string `json:"message"`
	UseTools bool   `json:"use_tools"`
}

// executeResponse is the result envelope the agent engine produces
type executeResponse struct {
	Success  bool                   `json:"success"`
	Response string                 `json:"response"`
	Metadata map[string]interface{} `json:"metadata"`
	Error    string                 `json:"error"`
}

// Execute runs one message through the agent engine and returns its result
// envelope unchanged
func (b *AgentBridge) Execute(ctx context.Context, message string, useTools bool) (*domain.AgentResult, error) {
	reqBody := executeRequest{
		Message:  message,
		UseTools: useTools,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal execute request: %w", err)
	}

	url := fmt.Sprintf("%s/agents/%s/execute", b.baseURL, b.kind)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call agent engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent engine returned error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var execResp executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&execResp); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %w", err)
	}

	result := &domain.AgentResult{
		Success:  execResp.Success,
		Content:  execResp.Response,
		Metadata: execResp.Metadata,
		Error:    execResp.Error,
	}
	if result.Metadata == nil {
		result.Metadata = map[string]interface{}{}
	}

	return result, nil
}

// HealthCheck checks if the agent engine is reachable
func (b *AgentBridge) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to check agent engine health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agent engine is unhealthy: status=%d", resp.StatusCode)
	}

	return nil
}
