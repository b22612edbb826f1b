package hsm

import "fmt"

// IDMap is the bijection between domain states and executor state ids.
// Every state has exactly one id and every id exactly one state; conflicting
// registrations are rejected.
type IDMap[S comparable] struct {
	ids    map[S]int
	states map[int]S
	names  map[S]string
	order  []S
	next   int
}

// NewIDMap creates an empty IDMap.
func NewIDMap[S comparable]() *IDMap[S] {
	return &IDMap[S]{
		ids:    make(map[S]int),
		states: make(map[int]S),
		names:  make(map[S]string),
	}
}

// Register binds state to id under a display name.
func (m *IDMap[S]) Register(state S, name string, id int) error {
	if prev, ok := m.ids[state]; ok {
		return fmt.Errorf("%w: state %v already bound to id %d", ErrDuplicateState, state, prev)
	}
	if prev, ok := m.states[id]; ok {
		return fmt.Errorf("%w: id %d already bound to state %v", ErrDuplicateState, id, prev)
	}
	m.ids[state] = id
	m.states[id] = state
	m.names[state] = name
	m.order = append(m.order, state)
	if id >= m.next {
		m.next = id + 1
	}
	return nil
}

// ID returns the executor id of state.
func (m *IDMap[S]) ID(state S) (int, bool) {
	id, ok := m.ids[state]
	return id, ok
}

// State returns the state bound to id.
func (m *IDMap[S]) State(id int) (S, bool) {
	s, ok := m.states[id]
	return s, ok
}

// Name returns the display name of state.
func (m *IDMap[S]) Name(state S) (string, bool) {
	n, ok := m.names[state]
	return n, ok
}

// NextID returns an id not yet in use.
func (m *IDMap[S]) NextID() int { return m.next }

// Len returns the number of registered states.
func (m *IDMap[S]) Len() int { return len(m.order) }

// States returns the registered states in registration order.
func (m *IDMap[S]) States() []S {
	return append([]S(nil), m.order...)
}
