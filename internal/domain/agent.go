package domain

import (
	"context"
	"fmt"
)

// AgentKind identifies one of the two supported agent execution modes
type AgentKind string

const (
	// AgentKindChat is the conversational agent
	AgentKindChat AgentKind = "chat"

	// AgentKindSearch is the tool-augmented web search agent
	AgentKindSearch AgentKind = "search"
)

// ParseAgentKind validates a raw agent type string from a request
func ParseAgentKind(s string) (AgentKind, error) {
	switch AgentKind(s) {
	case AgentKindChat, AgentKindSearch:
		return AgentKind(s), nil
	}
	return "", fmt.Errorf("unknown agent type: %q", s)
}

// AgentResult is the envelope an agent produces for one execution
type AgentResult struct {
	Success  bool
	Content  string
	Metadata map[string]interface{}
	Error    string
}

// Agent is an opaque execution unit owned by the registry. Internals
// (prompting, tools, model calls) live in the external agent engine.
type Agent interface {
	// Kind returns the agent's kind
	Kind() AgentKind

	// Execute runs one message through the agent, optionally with tools
	Execute(ctx context.Context, message string, useTools bool) (*AgentResult, error)

	// Capabilities returns the static capability list this agent advertises
	Capabilities() []string
}
