package dto

// ChatRequest is the body for POST /api/chat
type ChatRequest struct {
	Message   string                 `json:"message"`
	AgentType string                 `json:"agent_type"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// ChatResponse pairs an agent result with the requested kind and its
// capability list
type ChatResponse struct {
	Success      bool                   `json:"success"`
	Response     string                 `json:"response"`
	AgentType    string                 `json:"agent_type"`
	Capabilities []string               `json:"capabilities"`
	Metadata     map[string]interface{} `json:"metadata"`
	Error        string                 `json:"error,omitempty"`
}

// SearchRequest is the body for POST /api/search
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// SearchResponse is the summarized web search result
type SearchResponse struct {
	Success       bool                   `json:"success"`
	Query         string                 `json:"query"`
	Summary       string                 `json:"summary"`
	SearchResults map[string]interface{} `json:"search_results,omitempty"`
	SourcesCount  int                    `json:"sources_count"`
	Error         string                 `json:"error,omitempty"`
}

// CapabilitiesResponse lists both agent kinds' capabilities
type CapabilitiesResponse struct {
	Success      bool                `json:"success"`
	Capabilities map[string][]string `json:"capabilities,omitempty"`
	Error        string              `json:"error,omitempty"`
}
