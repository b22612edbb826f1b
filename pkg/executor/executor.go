// Package executor provides a reference implementation of hsm.Executor.
//
// The Executor keeps one active state id and dispatches its callbacks. A
// switch can take a configurable number of frames, during which the
// executor reports itself in transition and no state is updated.
package executor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

type state struct {
	name     string
	onUpdate func()
	onEnter  func()
	onExit   func()
}

// Executor is a frame-driven low-level state driver.
type Executor struct {
	logger *slog.Logger
	frames int

	states   map[int]state
	current  int
	hasCur   bool
	target   int
	left     int
	switches int
}

// Option configures an Executor.
type Option func(*Executor)

// WithTransitionFrames makes every switch take n Update calls.
func WithTransitionFrames(n int) Option {
	return func(e *Executor) {
		e.frames = max(n, 0)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New creates an Executor with no states.
func New(opts ...Option) *Executor {
	e := &Executor{
		states: make(map[int]state),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// AddState registers a state under id.
func (e *Executor) AddState(name string, id int, onUpdate, onEnter, onExit func()) error {
	if prev, ok := e.states[id]; ok {
		return fmt.Errorf("%w: id %d already used by %q", domain.ErrDuplicateState, id, prev.name)
	}
	e.states[id] = state{name: name, onUpdate: onUpdate, onEnter: onEnter, onExit: onExit}
	return nil
}

// SwitchState starts a switch to id. Without transition frames the exit and
// enter callbacks run immediately.
func (e *Executor) SwitchState(id int) error {
	if _, ok := e.states[id]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrUnknownState, id)
	}
	e.switches++
	if e.frames == 0 {
		e.enter(id)
		return nil
	}
	e.target = id
	e.left = e.frames
	e.logger.Debug("transition started", "to", e.states[id].name, "frames", e.frames)
	return nil
}

// Update advances a running transition by one frame, or updates the current state.
func (e *Executor) Update() {
	if e.left > 0 {
		e.left--
		if e.left == 0 {
			e.enter(e.target)
		}
		return
	}
	if !e.hasCur {
		return
	}
	if cb := e.states[e.current].onUpdate; cb != nil {
		cb()
	}
}

func (e *Executor) enter(id int) {
	if e.hasCur {
		if cb := e.states[e.current].onExit; cb != nil {
			cb()
		}
	}
	e.current = id
	e.hasCur = true
	if cb := e.states[id].onEnter; cb != nil {
		cb()
	}
}

// IsInTransition reports whether a switch is still running.
func (e *Executor) IsInTransition() bool { return e.left > 0 }

// HasState reports whether id is registered.
func (e *Executor) HasState(id int) bool {
	_, ok := e.states[id]
	return ok
}

// Current returns the active state id.
func (e *Executor) Current() (int, bool) { return e.current, e.hasCur }

// Name returns the name registered for id.
func (e *Executor) Name(id int) string { return e.states[id].name }

// Switches returns how many switches were accepted.
func (e *Executor) Switches() int { return e.switches }
