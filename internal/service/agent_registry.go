package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// AgentFactory constructs a handle for one agent kind. Construction may
// perform network setup and can fail.
type AgentFactory func(kind domain.AgentKind) (domain.Agent, error)

// AgentRegistry owns at most one agent handle per kind, constructed lazily
// on first use. The check-and-insert is guarded by a mutex held across
// construction, so exactly one construction per kind can ever complete
// (first-writer-wins). A failed construction caches nothing; the next call
// retries from scratch.
type AgentRegistry struct {
	mu      sync.Mutex
	agents  map[domain.AgentKind]domain.Agent
	factory AgentFactory
}

// NewAgentRegistry creates an empty registry with the given factory
func NewAgentRegistry(factory AgentFactory) *AgentRegistry {
	return &AgentRegistry{
		agents:  make(map[domain.AgentKind]domain.Agent),
		factory: factory,
	}
}

// GetOrCreate returns the cached handle for kind, constructing and caching
// it first if none exists yet
func (r *AgentRegistry) GetOrCreate(kind domain.AgentKind) (domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if agent, ok := r.agents[kind]; ok {
		return agent, nil
	}

	agent, err := r.factory(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s agent: %w", kind, err)
	}

	r.agents[kind] = agent
	return agent, nil
}

// Dispatch resolves the handle for kind and delegates execution to it. The
// handle's result envelope is returned unchanged, paired with the handle's
// capability list. The registry adds no interpretation of agent output.
func (r *AgentRegistry) Dispatch(ctx context.Context, kind domain.AgentKind, message string, useTools bool) (*domain.AgentResult, []string, error) {
	agent, err := r.GetOrCreate(kind)
	if err != nil {
		return nil, nil, err
	}

	result, err := agent.Execute(ctx, message, useTools)
	if err != nil {
		return nil, agent.Capabilities(), err
	}

	return result, agent.Capabilities(), nil
}

// Capabilities returns the capability list a handle of that kind advertises.
// When no handle is cached a transient one is constructed purely for the
// query and not retained.
func (r *AgentRegistry) Capabilities(kind domain.AgentKind) ([]string, error) {
	r.mu.Lock()
	cached, ok := r.agents[kind]
	r.mu.Unlock()

	if ok {
		return cached.Capabilities(), nil
	}

	transient, err := r.factory(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s agent: %w", kind, err)
	}
	return transient.Capabilities(), nil
}
