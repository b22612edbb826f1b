package bt

import "time"

// Inverter swaps Success and Failure of its child and passes Running through.
type Inverter struct {
	child Node
}

// NewInverter wraps child.
func NewInverter(child Node) *Inverter {
	return &Inverter{child: child}
}

// Tick implements Node.
func (n *Inverter) Tick() Status {
	switch s := n.child.Tick(); s {
	case Success:
		return Failure
	case Failure:
		return Success
	default:
		return s
	}
}

// Reset implements Node.
func (n *Inverter) Reset() { n.child.Reset() }

// Repeater never terminates: whenever its child finishes, the child is reset
// and the repeater reports Running.
type Repeater struct {
	child Node
}

// NewRepeater wraps child.
func NewRepeater(child Node) *Repeater {
	return &Repeater{child: child}
}

// Tick implements Node.
func (n *Repeater) Tick() Status {
	if n.child.Tick() != Running {
		n.child.Reset()
	}
	return Running
}

// Reset implements Node.
func (n *Repeater) Reset() { n.child.Reset() }

// RepeatUntil re-attempts its child until it reaches the target result.
type RepeatUntil struct {
	child  Node
	target Status
}

// NewRepeatUntil wraps child. With untilSuccess the target is Success,
// otherwise Failure.
func NewRepeatUntil(untilSuccess bool, child Node) *RepeatUntil {
	target := Failure
	if untilSuccess {
		target = Success
	}
	return &RepeatUntil{child: child, target: target}
}

// Tick implements Node.
func (n *RepeatUntil) Tick() Status {
	s := n.child.Tick()
	switch {
	case s == Running:
		return Running
	case s == n.target:
		n.child.Reset()
		return s
	default:
		n.child.Reset()
		return Running
	}
}

// Reset implements Node.
func (n *RepeatUntil) Reset() { n.child.Reset() }

// Cooldown gates its child: after a success, the child is not ticked again
// until window has elapsed, and the cooldown reports Running meanwhile.
type Cooldown struct {
	child   Node
	window  time.Duration
	clock   Clock
	last    time.Time
	cooling bool
}

// NewCooldown wraps child with a cooldown window.
func NewCooldown(window time.Duration, child Node, opts ...Option) *Cooldown {
	cfg := newConfig(opts)
	return &Cooldown{child: child, window: window, clock: cfg.clock}
}

// Tick implements Node.
func (n *Cooldown) Tick() Status {
	now := n.clock.Now()
	if n.cooling && now.Sub(n.last) < n.window {
		return Running
	}
	s := n.child.Tick()
	if s == Success {
		n.last = now
		n.cooling = true
	}
	return s
}

// Reset implements Node.
func (n *Cooldown) Reset() {
	n.cooling = false
	n.last = time.Time{}
	n.child.Reset()
}

// Limiter lets its child succeed at most limit times. Once exhausted it
// fails without ticking the child until reset.
type Limiter struct {
	child Node
	limit int
	count int
}

// NewLimiter wraps child.
func NewLimiter(limit int, child Node) *Limiter {
	return &Limiter{child: child, limit: limit}
}

// Tick implements Node.
func (n *Limiter) Tick() Status {
	if n.count >= n.limit {
		return Failure
	}
	s := n.child.Tick()
	if s == Success {
		n.count++
	}
	return s
}

// Reset implements Node.
func (n *Limiter) Reset() {
	n.count = 0
	n.child.Reset()
}

// Remaining reports how many more successes the limiter allows.
func (n *Limiter) Remaining() int {
	return max(n.limit-n.count, 0)
}
