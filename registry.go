package arbor

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAgentNotFound is returned when no agent is registered under an id.
var ErrAgentNotFound = errors.New("agent not found")

// Observable is the read-only view of an agent the registry serves.
// *Agent[S] implements it for every S.
type Observable interface {
	ID() string
	Name() string
	Snapshot() Snapshot
}

// Registry indexes live agents by id. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]Observable
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]Observable)}
}

// Register adds a. Registering the same id twice fails.
func (r *Registry) Register(a Observable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[a.ID()]; ok {
		return fmt.Errorf("agent %s already registered", a.ID())
	}
	r.agents[a.ID()] = a
	r.order = append(r.order, a.ID())
	return nil
}

// Replace swaps the agent registered under id, keeping its position.
func (r *Registry) Replace(id string, a Observable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[id]; !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	delete(r.agents, id)
	r.agents[a.ID()] = a
	for i, existing := range r.order {
		if existing == id {
			r.order[i] = a.ID()
		}
	}
	return nil
}

// Get returns the agent registered under id.
func (r *Registry) Get(id string) (Observable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	return a, nil
}

// List returns every agent in registration order.
func (r *Registry) List() []Observable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Observable, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.agents[id])
	}
	return out
}
