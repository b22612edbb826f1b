package bt

import "time"

// Action is a leaf running fn on every tick and returning its result.
type Action struct {
	fn      func() Status
	onReset func()
}

// NewAction creates an Action. A nil fn always succeeds.
func NewAction(fn func() Status) *Action {
	return &Action{fn: fn}
}

// OnReset installs a hook invoked whenever the action is reset, so that
// callers can drop progress they keep outside the tree.
func (a *Action) OnReset(fn func()) *Action {
	a.onReset = fn
	return a
}

// Tick implements Node.
func (a *Action) Tick() Status {
	if a.fn == nil {
		return Success
	}
	return a.fn()
}

// Reset implements Node.
func (a *Action) Reset() {
	if a.onReset != nil {
		a.onReset()
	}
}

// Condition is a leaf mapping a predicate onto Success or Failure.
type Condition struct {
	pred func() bool
}

// NewCondition creates a Condition.
func NewCondition(pred func() bool) *Condition {
	return &Condition{pred: pred}
}

// Tick implements Node.
func (c *Condition) Tick() Status {
	if c.pred != nil && c.pred() {
		return Success
	}
	return Failure
}

// Reset implements Node.
func (c *Condition) Reset() {}

// Wait reports Running until d has elapsed since its first tick after the
// last reset, then Success.
type Wait struct {
	d       time.Duration
	clock   Clock
	started time.Time
	armed   bool
}

// NewWait creates a Wait of duration d.
func NewWait(d time.Duration, opts ...Option) *Wait {
	cfg := newConfig(opts)
	return &Wait{d: d, clock: cfg.clock}
}

// Tick implements Node.
func (w *Wait) Tick() Status {
	now := w.clock.Now()
	if !w.armed {
		w.armed = true
		w.started = now
	}
	if now.Sub(w.started) >= w.d {
		return Success
	}
	return Running
}

// Reset implements Node.
func (w *Wait) Reset() {
	w.armed = false
	w.started = time.Time{}
}
