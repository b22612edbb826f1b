package arbor

import (
	"io"
	"log/slog"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/bt"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/executor"
	"github.com/aretw0/arbor/pkg/hsm"
	"github.com/aretw0/arbor/pkg/observability"
)

type config struct {
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	exec    hsm.Executor
	policy  bt.AbandonPolicy
	board   blackboard.Blackboard
	clock   bt.Clock
	metrics *observability.Metrics
}

// Option defines a functional option for configuring an Agent.
type Option func(*config)

// WithLogger sets a custom structured logger for the agent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithExecutor injects the low-level state executor. The default is the
// reference executor with immediate switches.
func WithExecutor(exec hsm.Executor) Option {
	return func(c *config) {
		c.exec = exec
	}
}

// WithAbandonPolicy decides whether a state's tree is reset when the state is left.
func WithAbandonPolicy(p bt.AbandonPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithBlackboard sets the fact store copied into the frame on every update.
func WithBlackboard(bb blackboard.Blackboard) Option {
	return func(c *config) {
		c.board = bb
	}
}

// WithClock sets the agent clock, used to time updates and exposed to timed nodes.
func WithClock(clock bt.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithMetrics records the agent's events and update durations into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.exec == nil {
		c.exec = executor.New(executor.WithLogger(c.logger))
	}
	if c.board == nil {
		c.board = &blackboard.Memory{}
	}
	if c.clock == nil {
		c.clock = bt.SystemClock{}
	}
	return c
}
