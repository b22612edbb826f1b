package bt

import (
	"io"
	"log/slog"
)

// Status is the 3-valued result of a tick.
type Status int

const (
	// Running means the node needs more ticks to finish.
	Running Status = iota + 1
	// Success means the node finished and achieved its purpose.
	Success
	// Failure means the node finished without achieving its purpose.
	Failure
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "invalid"
	}
}

// Node is the uniform tick/reset contract of every behavior tree node.
type Node interface {
	Tick() Status
	Reset()
}

// AbandonPolicy decides what happens to a Running branch that stops being ticked.
type AbandonPolicy int

const (
	// RetainAbandoned keeps the stale progress until the next explicit Reset.
	RetainAbandoned AbandonPolicy = iota
	// ResetAbandoned resets the branch as soon as it is abandoned.
	ResetAbandoned
)

func (p AbandonPolicy) String() string {
	if p == ResetAbandoned {
		return "reset"
	}
	return "retain"
}

type config struct {
	clock    Clock
	policy   AbandonPolicy
	logger   *slog.Logger
	observer func(tree string, s Status)
}

// Option configures time-, policy- or logging-dependent nodes.
type Option func(*config)

// WithClock sets the time source used by Wait and Cooldown.
func WithClock(c Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// WithAbandonPolicy sets the abandoned-branch policy of a Tree or Parallel.
func WithAbandonPolicy(p AbandonPolicy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

// WithLogger sets the logger used by adapters that can report errors.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithTickObserver registers fn to be called with the result of every Tree tick.
func WithTickObserver(fn func(tree string, s Status)) Option {
	return func(cfg *config) {
		cfg.observer = fn
	}
}

func newConfig(opts []Option) config {
	cfg := config{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = SystemClock{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

func resetAll(children []Node) {
	for _, c := range children {
		c.Reset()
	}
}
