package hsm

import (
	"io"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

type options struct {
	name   string
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures a Machine.
type Option func(*options)

// WithName sets the machine name used in logs, events and snapshots.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

func newOptions(opts []Option) options {
	o := options{name: "root"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
