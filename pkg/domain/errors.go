package domain

import "errors"

// ErrDuplicateTransition is returned when a transition between the same pair of states already exists.
var ErrDuplicateTransition = errors.New("duplicate transition")

// ErrDuplicateSubMachine is returned when a sub-goal block is registered twice for the same state.
var ErrDuplicateSubMachine = errors.New("duplicate sub-machine")

// ErrNoTransitions is returned when a machine is built or evaluated without any transition.
var ErrNoTransitions = errors.New("no transitions registered")

// ErrUnknownState is returned when the executor does not recognize a state id.
var ErrUnknownState = errors.New("unknown state")

// ErrDuplicateState is returned when a state or state id is registered twice.
var ErrDuplicateState = errors.New("duplicate state")

// ErrBuilt is returned when the transition graph is mutated after it was built.
var ErrBuilt = errors.New("machine already built")
