package http

import (
	"fmt"
	"log"
	nethttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/delivery/http/dto"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// AgentHandler handles agent dispatch requests
type AgentHandler struct {
	dispatcher domain.AgentDispatcher
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(dispatcher domain.AgentDispatcher) *AgentHandler {
	return &AgentHandler{dispatcher: dispatcher}
}

// Chat proxies a message to the requested agent kind
// POST /api/chat
func (h *AgentHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request body")
	}

	if req.AgentType == "" {
		req.AgentType = string(domain.AgentKindChat)
	}

	kind, err := domain.ParseAgentKind(req.AgentType)
	if err != nil {
		return c.JSON(nethttp.StatusOK, dto.ChatResponse{
			Success:      false,
			AgentType:    req.AgentType,
			Capabilities: []string{},
			Metadata:     map[string]interface{}{},
			Error:        err.Error(),
		})
	}

	result, caps, err := h.dispatcher.Dispatch(c.Request().Context(), kind, req.Message, false)
	if err != nil {
		log.Printf("[ERROR] Chat dispatch failed: %v", err)
		if caps == nil {
			caps = []string{}
		}
		return c.JSON(nethttp.StatusOK, dto.ChatResponse{
			Success:      false,
			AgentType:    string(kind),
			Capabilities: caps,
			Metadata:     map[string]interface{}{},
			Error:        err.Error(),
		})
	}

	return c.JSON(nethttp.StatusOK, dto.ChatResponse{
		Success:      result.Success,
		Response:     result.Content,
		AgentType:    string(kind),
		Capabilities: caps,
		Metadata:     result.Metadata,
		Error:        result.Error,
	})
}

// Search phrases a web search prompt and runs it through the search agent
// with tools enabled
// POST /api/search
func (h *AgentHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request body")
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 5
	}

	prompt := fmt.Sprintf("Search for information about: %s. Provide a comprehensive summary with key findings.", req.Query)

	result, _, err := h.dispatcher.Dispatch(c.Request().Context(), domain.AgentKindSearch, prompt, true)
	if err != nil {
		log.Printf("[ERROR] Search dispatch failed: %v", err)
		return c.JSON(nethttp.StatusOK, dto.SearchResponse{
			Success: false,
			Query:   req.Query,
			Error:   err.Error(),
		})
	}

	if !result.Success {
		return c.JSON(nethttp.StatusOK, dto.SearchResponse{
			Success: false,
			Query:   req.Query,
			Error:   result.Error,
		})
	}

	return c.JSON(nethttp.StatusOK, dto.SearchResponse{
		Success:       true,
		Query:         req.Query,
		Summary:       result.Content,
		SearchResults: result.Metadata,
		SourcesCount:  toolsUsed(result.Metadata),
	})
}

// Capabilities returns both agent kinds' capability lists
// GET /api/agents/capabilities
func (h *AgentHandler) Capabilities(c echo.Context) error {
	chatCaps, err := h.dispatcher.Capabilities(domain.AgentKindChat)
	if err != nil {
		log.Printf("[ERROR] Failed to get chat capabilities: %v", err)
		return c.JSON(nethttp.StatusOK, dto.CapabilitiesResponse{Success: false, Error: err.Error()})
	}

	searchCaps, err := h.dispatcher.Capabilities(domain.AgentKindSearch)
	if err != nil {
		log.Printf("[ERROR] Failed to get search capabilities: %v", err)
		return c.JSON(nethttp.StatusOK, dto.CapabilitiesResponse{Success: false, Error: err.Error()})
	}

	return c.JSON(nethttp.StatusOK, dto.CapabilitiesResponse{
		Success: true,
		Capabilities: map[string][]string{
			"chat_agent":   chatCaps,
			"search_agent": searchCaps,
		},
	})
}

// toolsUsed pulls the tools_used counter out of agent metadata. JSON numbers
// decode as float64.
func toolsUsed(metadata map[string]interface{}) int {
	v, ok := metadata["tools_used"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
