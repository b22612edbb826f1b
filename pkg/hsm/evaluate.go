package hsm

import (
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Evaluate resolves one step of the transition graph from from.
//
// It returns the resolved state and the states that must still be activated
// to get there, in order. States owning a sub-machine are resolved entirely
// by that sub-machine, descending through nested sub-machines until a leaf
// is reached. Evaluate returns Invalid when the hierarchy holds no
// transitions.
func (m *Machine[S]) Evaluate(from S) (Ref[S], []S) {
	if !m.hasTransitions() {
		m.logger.Error("evaluate without transitions", "from", m.label(from), "err", ErrNoTransitions)
		return Invalid[S](), nil
	}
	to, hops := m.eval(from)
	active := m.root.active
	var queued []S
	for _, h := range hops {
		if h.To != active {
			queued = append(queued, h.To)
		}
	}
	return Some(to), queued
}

// eval returns the resolved state and every transition taken on the way.
func (m *Machine[S]) eval(from S) (S, []Transition[S]) {
	if sub, ok := m.subs[from]; ok {
		to, hops := sub.eval(from)
		for {
			next, ok := sub.subs[to]
			if !ok {
				break
			}
			leaf, more := next.eval(to)
			hops = append(hops, more...)
			sub = next
			if leaf == to {
				break
			}
			to = leaf
		}
		return to, hops
	}

	if list, ok := m.transitions[from]; ok {
		t, ok := list.best()
		if !ok {
			return from, nil
		}
		return t.To, []Transition[S]{t}
	}

	if owner := m.owner(from); owner != nil {
		return owner.eval(from)
	}
	return from, nil
}

// owner finds the descendant whose transition table holds from.
func (m *Machine[S]) owner(from S) *Machine[S] {
	for _, s := range m.subOrder {
		sub := m.subs[s]
		if _, ok := sub.transitions[from]; ok {
			return sub
		}
		if o := sub.owner(from); o != nil {
			return o
		}
	}
	return nil
}

// resolve walks the graph from the primary state to a fixed point and
// replaces the pending list with the hops not yet activated.
func (m *Machine[S]) resolve() {
	walk := []S{m.primary}
	var taken []Transition[S]
	seen := map[S]struct{}{}
	state := m.primary
	for {
		seen[state] = struct{}{}
		next, hops := m.eval(state)
		for _, h := range hops {
			if !slices.Contains(walk, h.To) {
				walk = append(walk, h.To)
				taken = append(taken, h)
			}
		}
		if _, cycle := seen[next]; cycle {
			break
		}
		state = next
	}

	start := 1
	if i := slices.Index(walk, m.active); i >= 0 {
		start = i + 1
	}
	pending := walk[start:]

	for _, t := range taken {
		if slices.Contains(pending, t.To) && !slices.Contains(m.pending, t.To) {
			m.logger.Debug("transition queued",
				"from", m.label(t.From), "to", m.label(t.To), "priority", t.Priority)
			m.hooks.EmitTransitionQueued(&domain.TransitionEvent{
				EventBase: domain.NewBase(domain.EventTransitionQueued, m.name),
				From:      m.label(t.From),
				To:        m.label(t.To),
				Priority:  t.Priority,
			})
		}
	}
	m.pending = slices.Clone(pending)
}
