package definition

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/hsm"
	"github.com/aretw0/arbor/pkg/utility"
)

// Facts supplies the environment score expressions run against.
// *blackboard.Frame implements it.
type Facts interface {
	Facts() map[string]any
}

// FactsFunc adapts a function to Facts.
type FactsFunc func() map[string]any

// Facts implements Facts.
func (f FactsFunc) Facts() map[string]any { return f() }

type compileOptions struct {
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	callbacks func(state string) hsm.Callbacks
}

// Option configures Compile.
type Option func(*compileOptions)

// WithLogger sets the logger of the machine and of expression failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *compileOptions) {
		o.logger = logger
	}
}

// WithLifecycleHooks sets the hooks of the compiled machine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *compileOptions) {
		o.hooks = hooks
	}
}

// WithCallbacks provides the executor callbacks of every state.
func WithCallbacks(fn func(state string) hsm.Callbacks) Option {
	return func(o *compileOptions) {
		o.callbacks = fn
	}
}

// Compile validates def, registers its states with exec and authors its
// goals, transitions and sub-goals into a new machine.
func Compile(def *Definition, exec hsm.Executor, facts Facts, opts ...Option) (*hsm.Machine[string], error) {
	o := compileOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("definition %q: %w", def.Name, err)
	}

	m := hsm.New(exec, def.Initial,
		hsm.WithName(def.Name),
		hsm.WithLogger(o.logger),
		hsm.WithLifecycleHooks(o.hooks),
	)
	for _, s := range def.States {
		var cb hsm.Callbacks
		if o.callbacks != nil {
			cb = o.callbacks(s)
		}
		if err := m.AddState(s, s, cb); err != nil {
			return nil, err
		}
	}
	if err := Author(def, dsl.New(m), facts, o.logger); err != nil {
		return nil, err
	}
	return m, nil
}

// Author writes the goals, transitions and sub-goals of def through b.
// The states must already be known to the machine's executor.
//
// Rejected declarations, such as a duplicate transition, are logged and
// skipped. Only a score expression that fails to compile is returned.
func Author(def *Definition, b *dsl.Builder[string], facts Facts, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := author{facts: facts, logger: logger}
	a.level(b, "", def.Goals, def.Transitions, def.SubGoals)
	b.Commit()
	if err := b.Err(); err != nil {
		logger.Warn("authoring errors ignored", "definition", def.Name, "err", err)
	}
	return errors.Join(a.errs...)
}

type author struct {
	facts  Facts
	logger *slog.Logger
	errs   []error
}

func (a *author) level(b *dsl.Builder[string], owner string, goals []Goal, transitions []Transition, blocks []Block) {
	for _, g := range goals {
		b.Goal(g.State, a.scorer(g.Score, g.Factors))
	}
	for _, t := range transitions {
		from := t.From
		if from == "" {
			from = owner
		}
		eval := a.scorer(t.Score, t.Factors)
		if eval == nil {
			eval = utility.Constant(1)
		}
		b.From(from).To(t.To).Priority(t.Priority).When(eval)
	}
	for _, blk := range blocks {
		child := b.From(blk.State).SubGoals()
		a.level(child, blk.State, blk.Goals, blk.Transitions, blk.SubGoals)
		child.End()
	}
}

// scorer builds the scorer of a score expression or a factor list, or nil
// when neither is given.
func (a *author) scorer(score string, factors []Factor) utility.Scorer {
	if score != "" {
		return a.expr(score)
	}
	if len(factors) == 0 {
		return nil
	}
	fs := make([]utility.Factor, 0, len(factors))
	for _, f := range factors {
		fs = append(fs, utility.Factor{Name: f.Expr, Value: a.expr(f.Expr), Weight: f.Weight})
	}
	return utility.Weighted(fs...)
}

func (a *author) expr(src string) utility.Scorer {
	program, err := compileExpr(src)
	if err != nil {
		a.errs = append(a.errs, err)
		return utility.Constant(0)
	}
	return exprScorer(program, src, a.facts, a.logger)
}

func compileExpr(src string) (*vm.Program, error) {
	program, err := expr.Compile(src,
		expr.Env(map[string]any{}),
		expr.AsFloat64(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	return program, nil
}

// exprScorer runs program against the current facts. A failing evaluation
// scores 0.
func exprScorer(program *vm.Program, src string, facts Facts, logger *slog.Logger) utility.Scorer {
	return func() float32 {
		env := map[string]any{}
		if facts != nil {
			env = facts.Facts()
		}
		out, err := expr.Run(program, env)
		if err != nil {
			logger.Debug("score expression failed", "expr", src, "err", err)
			return 0
		}
		f, ok := out.(float64)
		if !ok {
			logger.Debug("score expression returned a non-number", "expr", src, "type", fmt.Sprintf("%T", out))
			return 0
		}
		return float32(f)
	}
}
