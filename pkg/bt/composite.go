package bt

// Sequence ticks its children one at a time, in order, until one fails.
// A child that succeeds is reset and the sequence moves on to the next child
// on the following tick; the sequence succeeds when the last child succeeds.
type Sequence struct {
	children []Node
	index    int
}

// NewSequence creates a Sequence over children.
func NewSequence(children ...Node) *Sequence {
	return &Sequence{children: children}
}

// Tick implements Node.
func (s *Sequence) Tick() Status {
	if len(s.children) == 0 {
		return Success
	}
	child := s.children[s.index]
	switch child.Tick() {
	case Running:
		return Running
	case Success:
		child.Reset()
		s.index++
		if s.index >= len(s.children) {
			s.Reset()
			return Success
		}
		return Running
	default:
		s.Reset()
		return Failure
	}
}

// Reset implements Node.
func (s *Sequence) Reset() {
	s.index = 0
	resetAll(s.children)
}

// Selector ticks its children one at a time, in order, until one succeeds.
// A child that fails is reset and the selector moves on to the next child on
// the following tick; the selector fails when the last child fails.
type Selector struct {
	children []Node
	index    int
}

// NewSelector creates a Selector over children.
func NewSelector(children ...Node) *Selector {
	return &Selector{children: children}
}

// Tick implements Node.
func (s *Selector) Tick() Status {
	if len(s.children) == 0 {
		return Failure
	}
	child := s.children[s.index]
	switch child.Tick() {
	case Running:
		return Running
	case Success:
		s.Reset()
		return Success
	default:
		child.Reset()
		s.index++
		if s.index >= len(s.children) {
			s.Reset()
			return Failure
		}
		return Running
	}
}

// Reset implements Node.
func (s *Selector) Reset() {
	s.index = 0
	resetAll(s.children)
}

// PrioritySelector re-checks its children from the first one on every tick,
// so a higher priority child preempts a lower priority one that is Running.
// The preempted child is reset.
type PrioritySelector struct {
	children []Node
	running  int
}

// NewPrioritySelector creates a PrioritySelector over children, highest priority first.
func NewPrioritySelector(children ...Node) *PrioritySelector {
	return &PrioritySelector{children: children, running: -1}
}

// Tick implements Node.
func (p *PrioritySelector) Tick() Status {
	for i, child := range p.children {
		switch child.Tick() {
		case Running:
			if p.running >= 0 && p.running != i {
				p.children[p.running].Reset()
			}
			p.running = i
			return Running
		case Success:
			p.Reset()
			return Success
		default:
			child.Reset()
		}
	}
	p.Reset()
	return Failure
}

// Reset implements Node.
func (p *PrioritySelector) Reset() {
	p.running = -1
	resetAll(p.children)
}

// RunningIndex reports the child remembered as Running, or -1.
func (p *PrioritySelector) RunningIndex() int {
	return p.running
}

// ParallelMode selects how a Parallel reaches its decision.
type ParallelMode int

const (
	// RequireAll succeeds once every child succeeded and fails on the first failure.
	RequireAll ParallelMode = iota
	// SucceedOnFirst succeeds on the first success and fails only when every child failed.
	SucceedOnFirst
)

// Parallel ticks every unfinished child on each tick.
// Children that already finished are not ticked again until the Parallel
// decides, at which point they are reset. Children still Running when the
// decision is made are abandoned and handled according to the AbandonPolicy.
type Parallel struct {
	mode     ParallelMode
	policy   AbandonPolicy
	children []Node
	results  []Status
}

// NewParallel creates a Parallel over children.
func NewParallel(mode ParallelMode, children ...Node) *Parallel {
	return &Parallel{
		mode:     mode,
		children: children,
		results:  make([]Status, len(children)),
	}
}

// WithPolicy sets the abandoned-branch policy and returns p.
func (p *Parallel) WithPolicy(policy AbandonPolicy) *Parallel {
	p.policy = policy
	return p
}

// Tick implements Node.
func (p *Parallel) Tick() Status {
	if len(p.children) == 0 {
		if p.mode == RequireAll {
			return Success
		}
		return Failure
	}

	for i, child := range p.children {
		if p.results[i] == Success || p.results[i] == Failure {
			continue
		}
		status := child.Tick()
		p.results[i] = status
		switch {
		case status == Success && p.mode == SucceedOnFirst:
			p.decide()
			return Success
		case status == Failure && p.mode == RequireAll:
			p.decide()
			return Failure
		}
	}

	succeeded, running := 0, 0
	for _, r := range p.results {
		switch r {
		case Success:
			succeeded++
		case Running:
			running++
		}
	}

	switch {
	case running > 0:
		return Running
	case p.mode == RequireAll && succeeded == len(p.children):
		p.decide()
		return Success
	default:
		p.decide()
		return Failure
	}
}

// decide clears the bookkeeping after a decision: finished children are
// reset, Running ones only under ResetAbandoned.
func (p *Parallel) decide() {
	for i, child := range p.children {
		switch p.results[i] {
		case Success, Failure:
			child.Reset()
		case Running:
			if p.policy == ResetAbandoned {
				child.Reset()
			}
		}
		p.results[i] = 0
	}
}

// Reset implements Node.
func (p *Parallel) Reset() {
	clear(p.results)
	resetAll(p.children)
}
