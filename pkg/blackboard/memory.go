package blackboard

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-process Blackboard. The zero value is ready to use.
// Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewMemory creates a Memory blackboard seeded with facts.
func NewMemory(facts map[string]any) *Memory {
	return &Memory{data: maps.Clone(facts)}
}

func (m *Memory) init() {
	if m.data == nil {
		m.data = make(map[string]any)
	}
}

// Get implements Blackboard.
func (m *Memory) Get(_ context.Context, key string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Blackboard.
func (m *Memory) Set(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.data[key] = value
	return nil
}

// Delete implements Blackboard.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Snapshot implements Blackboard.
func (m *Memory) Snapshot(_ context.Context) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.data))
	maps.Copy(out, m.data)
	return out, nil
}
