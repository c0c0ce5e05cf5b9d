package domain

import "context"

// ArbitrageService runs the funding arbitrage pipeline
type ArbitrageService interface {
	// GetArbitrageOpportunities runs fetch -> parse -> filter -> rank and
	// always returns a well-formed report, never an error
	GetArbitrageOpportunities(ctx context.Context) *ArbitrageReport
}

// AgentDispatcher resolves agent handles and delegates execution to them
type AgentDispatcher interface {
	// Dispatch resolves the handle for kind and executes message through it,
	// returning the handle's result unchanged plus its capability list
	Dispatch(ctx context.Context, kind AgentKind, message string, useTools bool) (*AgentResult, []string, error)

	// Capabilities returns the capability list a handle of that kind advertises
	Capabilities(kind AgentKind) ([]string, error)
}
