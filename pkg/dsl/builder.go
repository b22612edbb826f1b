package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/arbor/pkg/hsm"
	"github.com/aretw0/arbor/pkg/utility"
)

type edgeState int

const (
	noPendingEdge edgeState = iota
	pendingEdge
)

type edge[S comparable] struct {
	state    edgeState
	from     hsm.Ref[S]
	to       hsm.Ref[S]
	priority int
	eval     utility.Scorer
}

// Builder authors the transitions, goals and sub-machines of a machine.
type Builder[S comparable] struct {
	machine *hsm.Machine[S]
	parent  *Builder[S]
	from    hsm.Ref[S]
	edge    edge[S]
	errs    *[]error
}

// New creates a root builder authoring m.
func New[S comparable](m *hsm.Machine[S]) *Builder[S] {
	return &Builder[S]{machine: m, errs: new([]error)}
}

// Machine returns the machine authored by this block.
func (b *Builder[S]) Machine() *hsm.Machine[S] { return b.machine }

// Goal registers a goal evaluator and makes state the implicit source of the
// following edges. The goal itself is recorded as a wildcard edge, so a
// SubGoals block can open on it, but it never becomes a transition.
func (b *Builder[S]) Goal(state S, scorer utility.Scorer) *Builder[S] {
	b.Commit()
	b.machine.AddGoal(state, scorer)
	b.from = hsm.Some(state)
	b.edge = edge[S]{state: pendingEdge, from: hsm.Any[S](), to: hsm.Some(state)}
	return b
}

// From commits the pending edge and sets the implicit source state.
func (b *Builder[S]) From(state S) *Builder[S] {
	b.Commit()
	b.from = hsm.Some(state)
	return b
}

// To commits the pending edge and starts a new one from the implicit source.
func (b *Builder[S]) To(state S) *Builder[S] {
	b.Commit()
	if !b.from.IsSome() {
		b.fail(fmt.Errorf("edge to %s has no source state", b.machine.Label(state)))
	}
	b.edge = edge[S]{state: pendingEdge, from: b.from, to: hsm.Some(state)}
	return b
}

// Priority sets the priority of the pending edge. Lower values are
// evaluated first.
func (b *Builder[S]) Priority(p int) *Builder[S] {
	if b.edge.state != pendingEdge {
		b.fail(errors.New("priority set without a pending edge"))
		return b
	}
	b.edge.priority = p
	return b
}

// When sets the evaluator of the pending edge. An edge committed without
// one is unconditional.
func (b *Builder[S]) When(scorer utility.Scorer) *Builder[S] {
	if b.edge.state != pendingEdge {
		b.fail(errors.New("evaluator set without a pending edge"))
		return b
	}
	b.edge.eval = scorer
	return b
}

// SubGoals opens a nested block for the pending edge's target, or for the
// implicit source when no edge is pending. The edge itself is never
// committed; the target's sub-machine replaces it.
func (b *Builder[S]) SubGoals() *Builder[S] {
	owner := b.from
	if b.edge.state == pendingEdge && b.edge.to.IsSome() {
		owner = b.edge.to
		b.edge.to = hsm.Any[S]()
	}
	state, ok := owner.Get()
	if !ok {
		b.fail(errors.New("sub-goals opened without a state"))
		return &Builder[S]{machine: b.machine, parent: b, errs: b.errs}
	}
	b.Commit()

	sub, err := b.machine.SubMachine(state)
	if err != nil {
		b.fail(err)
	}
	if sub == nil {
		sub = b.machine
	}
	return &Builder[S]{machine: sub, parent: b, from: hsm.Some(state), errs: b.errs}
}

// End commits the pending edge and returns the enclosing block, or b itself
// at the root.
func (b *Builder[S]) End() *Builder[S] {
	b.Commit()
	if b.parent == nil {
		return b
	}
	return b.parent
}

// Commit turns the pending edge into a transition. Edges with a wildcard
// endpoint are discarded.
func (b *Builder[S]) Commit() *Builder[S] {
	e := b.edge
	b.edge = edge[S]{}
	if e.state != pendingEdge {
		return b
	}
	from, okFrom := e.from.Get()
	to, okTo := e.to.Get()
	if !okFrom || !okTo {
		return b
	}
	eval := e.eval
	if eval == nil {
		eval = utility.Constant(1)
	}
	err := b.machine.AddTransition(hsm.Transition[S]{
		From:      from,
		To:        to,
		Priority:  e.priority,
		Evaluator: eval,
	})
	if err != nil {
		b.fail(err)
	}
	return b
}

// Err returns every authoring error collected so far, across all blocks.
func (b *Builder[S]) Err() error {
	return errors.Join(*b.errs...)
}

func (b *Builder[S]) fail(err error) {
	*b.errs = append(*b.errs, err)
}
