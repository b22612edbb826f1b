package hsm

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/utility"
)

// Transition is a directed, scored edge between two states. Lower Priority
// values are evaluated first and win ties.
type Transition[S comparable] struct {
	From      S
	To        S
	Priority  int
	Evaluator utility.Scorer
}

// TransitionsData is the ordered list of transitions leaving one state.
type TransitionsData[S comparable] []Transition[S]

func (d TransitionsData[S]) has(to S) bool {
	return slices.ContainsFunc(d, func(t Transition[S]) bool { return t.To == to })
}

func (d TransitionsData[S]) sort() {
	slices.SortStableFunc(d, func(a, b Transition[S]) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
}

// best returns the transition with the strictly highest positive score.
// Ties keep the earliest transition in list order.
func (d TransitionsData[S]) best() (Transition[S], bool) {
	var (
		winner    Transition[S]
		bestScore float32
		found     bool
	)
	for _, t := range d {
		if s := utility.Eval(t.Evaluator); s > bestScore {
			winner, bestScore, found = t, s, true
		}
	}
	return winner, found
}

// AddTransition inserts t into the list of its source state. A second
// transition between the same pair of states is rejected.
func (m *Machine[S]) AddTransition(t Transition[S]) error {
	if m.built {
		return fmt.Errorf("add transition %s -> %s: %w", m.label(t.From), m.label(t.To), ErrBuilt)
	}
	list, ok := m.transitions[t.From]
	if ok && list.has(t.To) {
		m.logger.Warn("duplicate transition rejected", "from", m.label(t.From), "to", m.label(t.To))
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateTransition, m.label(t.From), m.label(t.To))
	}
	if !ok {
		m.froms = append(m.froms, t.From)
	}
	m.transitions[t.From] = append(list, t)
	m.logger.Debug("transition added",
		"from", m.label(t.From), "to", m.label(t.To), "priority", t.Priority)
	return nil
}

// Transitions returns every transition of this machine, grouped by source
// state in the order the sources were first seen.
func (m *Machine[S]) Transitions() []Transition[S] {
	var out []Transition[S]
	for _, from := range m.froms {
		out = append(out, m.transitions[from]...)
	}
	return out
}

// TransitionsFrom returns the transition list of from.
func (m *Machine[S]) TransitionsFrom(from S) TransitionsData[S] {
	return slices.Clone(m.transitions[from])
}

// hasTransitions reports whether this machine or any descendant holds a transition.
func (m *Machine[S]) hasTransitions() bool {
	if len(m.transitions) > 0 {
		return true
	}
	for _, s := range m.subOrder {
		if m.subs[s].hasTransitions() {
			return true
		}
	}
	return false
}
