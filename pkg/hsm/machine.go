package hsm

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Machine is a hierarchical utility state machine.
//
// A root machine is created with New. Sub-machines created with SubMachine
// share the root's Executor and IDMap but own their transitions and goals.
type Machine[S comparable] struct {
	name   string
	exec   Executor
	ids    *IDMap[S]
	root   *Machine[S]
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	transitions map[S]TransitionsData[S]
	froms       []S
	goals       goalTable[S]
	subs        map[S]*Machine[S]
	subOrder    []S

	initial S
	primary S
	active  S
	built   bool
	pending []S
}

// New creates a root machine starting in initial.
func New[S comparable](exec Executor, initial S, opts ...Option) *Machine[S] {
	o := newOptions(opts)
	m := &Machine[S]{
		name:        o.name,
		exec:        exec,
		ids:         NewIDMap[S](),
		logger:      o.logger.With("machine", o.name),
		hooks:       o.hooks,
		transitions: make(map[S]TransitionsData[S]),
		subs:        make(map[S]*Machine[S]),
		initial:     initial,
		primary:     initial,
		active:      initial,
	}
	m.root = m
	return m
}

// AddState registers state with the executor under the next free id.
func (m *Machine[S]) AddState(state S, name string, cb Callbacks) error {
	r := m.root
	if _, ok := r.ids.ID(state); ok {
		return fmt.Errorf("add state %q: %w", name, ErrDuplicateState)
	}
	id := r.ids.NextID()
	if err := r.exec.AddState(name, id, cb.OnUpdate, cb.OnEnter, cb.OnExit); err != nil {
		return fmt.Errorf("add state %q: %w", name, err)
	}
	if err := r.ids.Register(state, name, id); err != nil {
		return fmt.Errorf("add state %q: %w", name, err)
	}
	return nil
}

// SubMachine registers a child machine for state. A second registration for
// the same state returns the existing child along with ErrDuplicateSubMachine.
func (m *Machine[S]) SubMachine(state S) (*Machine[S], error) {
	if sub, ok := m.subs[state]; ok {
		m.logger.Warn("duplicate sub-machine rejected", "state", m.label(state))
		return sub, fmt.Errorf("%w: %s", ErrDuplicateSubMachine, m.label(state))
	}
	if m.built {
		return nil, fmt.Errorf("sub-machine %s: %w", m.label(state), ErrBuilt)
	}
	name := m.name + "/" + m.label(state)
	sub := &Machine[S]{
		name:        name,
		exec:        m.exec,
		ids:         m.ids,
		root:        m.root,
		logger:      m.root.logger.With("machine", name),
		hooks:       m.hooks,
		transitions: make(map[S]TransitionsData[S]),
		subs:        make(map[S]*Machine[S]),
		initial:     state,
		primary:     state,
		active:      state,
	}
	m.subs[state] = sub
	m.subOrder = append(m.subOrder, state)
	return sub, nil
}

// Build finalizes the graph: children are built first, then every
// transition list is sorted by priority. A root machine then switches the
// executor to its active state.
func (m *Machine[S]) Build() error {
	if m.built {
		return nil
	}
	if !m.hasTransitions() {
		m.logger.Error("cannot build machine", "err", ErrNoTransitions)
		return fmt.Errorf("build %s: %w", m.name, ErrNoTransitions)
	}
	m.finalize()
	if m.root == m {
		if err := m.switchExecutor(m.active); err != nil {
			m.logger.Error("initial state not known to executor", "state", m.label(m.active), "err", err)
		}
	}
	return nil
}

func (m *Machine[S]) finalize() {
	for _, s := range m.subOrder {
		m.subs[s].finalize()
	}
	for _, list := range m.transitions {
		list.sort()
	}
	m.built = true
}

// Update runs one tick: goal arbitration, pending drain, executor update and
// transition resolution. It only fails when the machine cannot be built.
func (m *Machine[S]) Update() error {
	if !m.built {
		if err := m.Build(); err != nil {
			return err
		}
	}

	if best, score := m.goals.arbitrate(); best.IsSome() && !m.exec.IsInTransition() {
		s, _ := best.Get()
		m.fire(s, score)
	}

	if len(m.pending) > 0 && !m.exec.IsInTransition() {
		next := m.pending[0]
		m.pending = m.pending[1:]
		prev := m.active
		if err := m.switchExecutor(next); err != nil {
			m.logger.Error("unknown state on switch", "state", m.label(next), "err", err)
		} else {
			m.active = next
			m.stateChanged(prev, next)
		}
	}

	m.exec.Update()
	m.resolve()
	return nil
}

// FireState makes state both the primary and the active state and switches
// the executor to it. It does nothing if state is already primary or active.
func (m *Machine[S]) FireState(state S) {
	m.fire(state, m.goals.lastScore(state))
}

func (m *Machine[S]) fire(state S, score float32) {
	if state == m.primary || state == m.active {
		return
	}
	prevPrimary, prevActive := m.primary, m.active
	m.pending = nil
	m.primary = state
	m.active = state
	if err := m.switchExecutor(state); err != nil {
		m.logger.Error("unknown state on switch", "state", m.label(state), "err", err)
	} else {
		m.stateChanged(prevActive, state)
	}
	m.logger.Info("goal changed", "from", m.label(prevPrimary), "to", m.label(state), "score", score)
	m.hooks.EmitGoalChange(&domain.GoalEvent{
		EventBase: domain.NewBase(domain.EventGoalChange, m.name),
		From:      m.label(prevPrimary),
		To:        m.label(state),
		Score:     score,
	})
}

func (m *Machine[S]) stateChanged(from, to S) {
	m.logger.Info("state changed", "from", m.label(from), "to", m.label(to))
	m.hooks.EmitStateChange(&domain.StateEvent{
		EventBase: domain.NewBase(domain.EventStateChange, m.name),
		From:      m.label(from),
		To:        m.label(to),
	})
}

func (m *Machine[S]) switchExecutor(state S) error {
	r := m.root
	id, ok := r.ids.ID(state)
	if !ok || !r.exec.HasState(id) {
		return fmt.Errorf("%w: %s", ErrUnknownState, m.label(state))
	}
	if err := r.exec.SwitchState(id); err != nil {
		if errors.Is(err, ErrUnknownState) {
			return err
		}
		return fmt.Errorf("switch to %s: %w", m.label(state), err)
	}
	return nil
}

// label renders a state for logs and events.
func (m *Machine[S]) label(s S) string {
	if n, ok := m.root.ids.Name(s); ok {
		return n
	}
	return fmt.Sprint(s)
}

// Label returns the registered name of s, or its default formatting.
func (m *Machine[S]) Label(s S) string { return m.label(s) }

func (m *Machine[S]) Name() string         { return m.name }
func (m *Machine[S]) PrimaryState() S      { return m.primary }
func (m *Machine[S]) ActiveState() S       { return m.active }
func (m *Machine[S]) InitialGoal() S       { return m.initial }
func (m *Machine[S]) Built() bool          { return m.built }
func (m *Machine[S]) IDs() *IDMap[S]       { return m.root.ids }
func (m *Machine[S]) Executor() Executor   { return m.exec }
func (m *Machine[S]) Pending() []S         { return slices.Clone(m.pending) }
func (m *Machine[S]) IsRoot() bool         { return m.root == m }
func (m *Machine[S]) Logger() *slog.Logger { return m.logger }

// SubMachineEntry pairs a sub-machine with the state that owns it.
type SubMachineEntry[S comparable] struct {
	State   S
	Machine *Machine[S]
}

// SubMachines returns the direct children in registration order.
func (m *Machine[S]) SubMachines() []SubMachineEntry[S] {
	out := make([]SubMachineEntry[S], 0, len(m.subOrder))
	for _, s := range m.subOrder {
		out = append(out, SubMachineEntry[S]{State: s, Machine: m.subs[s]})
	}
	return out
}
