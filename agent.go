package arbor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/bt"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/hsm"
	"github.com/aretw0/arbor/pkg/observability"
)

// Agent binds a hierarchical utility state machine to one behavior tree per
// state and to a blackboard of facts.
type Agent[S comparable] struct {
	mu      sync.Mutex
	id      string
	name    string
	cfg     config
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	machine *hsm.Machine[S]
	author  *dsl.Builder[S]
	frame   *blackboard.Frame
	trees   map[S]*bt.Tree
	order   []S
	ticks   uint64
}

// NewAgent creates an agent starting in initial.
func NewAgent[S comparable](name string, initial S, opts ...Option) *Agent[S] {
	cfg := newConfig(opts)
	a := &Agent[S]{
		id:     uuid.NewString(),
		name:   name,
		cfg:    cfg,
		hooks:  cfg.hooks,
		frame:  blackboard.NewFrame(),
		trees:  make(map[S]*bt.Tree),
		logger: cfg.logger.With("agent", name),
	}
	if cfg.metrics != nil {
		a.hooks = observability.Combine(cfg.hooks, cfg.metrics.Hooks(name))
	}
	a.machine = hsm.New(cfg.exec, initial,
		hsm.WithName(name),
		hsm.WithLogger(cfg.logger),
		hsm.WithLifecycleHooks(a.hooks),
	)
	a.author = dsl.New(a.machine)
	return a
}

// Define registers state with the executor and binds root to it. The tree
// is ticked on every update while the state is active and abandoned, per
// the agent's AbandonPolicy, when the state is left. A nil root registers
// the state without behavior.
func (a *Agent[S]) Define(state S, name string, root bt.Node) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var cb hsm.Callbacks
	var tree *bt.Tree
	if root != nil {
		tree = bt.NewTree(name, root,
			bt.WithAbandonPolicy(a.cfg.policy),
			bt.WithTickObserver(a.observeTick),
		)
		cb.OnUpdate = func() { tree.Tick() }
		cb.OnExit = tree.Abandon
	}
	cb.OnEnter = func() {
		a.logger.Debug("state entered", "state", name)
	}
	if err := a.machine.AddState(state, name, cb); err != nil {
		return fmt.Errorf("define %q: %w", name, err)
	}
	if tree != nil {
		a.trees[state] = tree
		a.order = append(a.order, state)
	}
	return nil
}

func (a *Agent[S]) observeTick(tree string, s bt.Status) {
	a.hooks.EmitTreeTick(&domain.TickEvent{
		EventBase: domain.NewBase(domain.EventTreeTick, a.name),
		State:     tree,
		Status:    s.String(),
	})
}

// Author returns the builder used to declare goals, transitions and sub-goals.
func (a *Agent[S]) Author() *dsl.Builder[S] { return a.author }

// Machine returns the underlying state machine.
func (a *Agent[S]) Machine() *hsm.Machine[S] { return a.machine }

// Frame returns the fact frame scorers should read.
func (a *Agent[S]) Frame() *blackboard.Frame { return a.frame }

// Blackboard returns the agent's fact store.
func (a *Agent[S]) Blackboard() blackboard.Blackboard { return a.cfg.board }

// Clock returns the agent clock, for building timed nodes.
func (a *Agent[S]) Clock() bt.Clock { return a.cfg.clock }

// ID returns the unique instance id of the agent.
func (a *Agent[S]) ID() string { return a.id }

// Name returns the agent name.
func (a *Agent[S]) Name() string { return a.name }

// Tree returns the tree bound to state.
func (a *Agent[S]) Tree(state S) (*bt.Tree, bool) {
	t, ok := a.trees[state]
	return t, ok
}

// Update runs one frame: the fact frame is refreshed from the blackboard,
// then the machine is updated. Authoring errors are reported the first time
// the machine builds.
func (a *Agent[S]) Update(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := a.cfg.clock.Now()
	if err := a.frame.Refresh(ctx, a.cfg.board); err != nil {
		return err
	}
	if !a.machine.Built() {
		if err := a.author.Err(); err != nil {
			a.logger.Warn("authoring errors", "err", err)
		}
	}
	if err := a.machine.Update(); err != nil {
		return err
	}
	a.ticks++
	if a.cfg.metrics != nil {
		a.cfg.metrics.ObserveUpdate(a.name, a.cfg.clock.Now().Sub(start))
	}
	return nil
}

// Snapshot is a JSON friendly view of an agent.
type Snapshot struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Ticks   uint64         `json:"ticks"`
	Machine hsm.Snapshot   `json:"machine"`
	Trees   []TreeSnapshot `json:"trees,omitempty"`
}

// TreeSnapshot is the state of one behavior tree.
type TreeSnapshot struct {
	Name   string `json:"name"`
	Last   string `json:"last,omitempty"`
	Ticks  uint64 `json:"ticks"`
	Active bool   `json:"active"`
}

// Snapshot captures the agent between updates. Safe for concurrent use.
func (a *Agent[S]) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		ID:      a.id,
		Name:    a.name,
		Ticks:   a.ticks,
		Machine: a.machine.Snapshot(),
	}
	active := a.machine.ActiveState()
	for _, s := range a.order {
		t := a.trees[s]
		ts := TreeSnapshot{Name: t.Name(), Ticks: t.Ticks(), Active: s == active}
		if t.Last() != 0 {
			ts.Last = t.Last().String()
		}
		snap.Trees = append(snap.Trees, ts)
	}
	return snap
}
