package bt

// Tree is the root wrapper of a behavior tree bound to one machine state.
type Tree struct {
	name     string
	root     Node
	policy   AbandonPolicy
	observer func(string, Status)
	last     Status
	ticks    uint64
}

// NewTree wraps root. WithAbandonPolicy decides what Abandon does and
// WithTickObserver receives every tick result.
func NewTree(name string, root Node, opts ...Option) *Tree {
	cfg := newConfig(opts)
	return &Tree{
		name:     name,
		root:     root,
		policy:   cfg.policy,
		observer: cfg.observer,
	}
}

// Name returns the tree name.
func (t *Tree) Name() string { return t.name }

// Policy returns the abandon policy of the tree.
func (t *Tree) Policy() AbandonPolicy { return t.policy }

// Last returns the result of the most recent tick, or 0 before the first one.
func (t *Tree) Last() Status { return t.last }

// Ticks returns how many times the tree was ticked.
func (t *Tree) Ticks() uint64 { return t.ticks }

// Tick implements Node.
func (t *Tree) Tick() Status {
	if t.root == nil {
		return Failure
	}
	s := t.root.Tick()
	t.last = s
	t.ticks++
	if t.observer != nil {
		t.observer(t.name, s)
	}
	return s
}

// Reset implements Node.
func (t *Tree) Reset() {
	t.last = 0
	if t.root != nil {
		t.root.Reset()
	}
}

// Abandon is called when the owner stops ticking the tree, typically on
// state exit. Under ResetAbandoned the tree is reset; under RetainAbandoned
// its progress is kept for the next time it is entered.
func (t *Tree) Abandon() {
	if t.policy == ResetAbandoned {
		t.Reset()
	}
}
