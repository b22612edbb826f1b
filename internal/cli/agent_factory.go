package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/bt"
	"github.com/aretw0/arbor/pkg/definition"
	"github.com/aretw0/arbor/pkg/executor"
	"github.com/aretw0/arbor/pkg/observability"
)

const defaultTicks = 10

// session is one loaded definition bound to a live agent.
type session struct {
	def      *definition.Definition
	scenario *definition.Scenario
	agent    *arbor.Agent[string]
	board    blackboard.Blackboard
	close    func() error
}

// newSession loads the definition and scenario of opts and builds an agent
// over them. Every state gets a placeholder tree that succeeds on each tick.
func newSession(ctx context.Context, opts SimulateOptions, logger *slog.Logger, extra ...arbor.Option) (*session, error) {
	def, err := definition.Load(opts.DefinitionPath)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("definition %q: %w", def.Name, err)
	}

	sc := &definition.Scenario{}
	if opts.ScenarioPath != "" {
		if sc, err = definition.LoadScenario(opts.ScenarioPath); err != nil {
			return nil, err
		}
	}

	board, closeBoard, err := openBlackboard(ctx, opts.Config, def.Name)
	if err != nil {
		return nil, err
	}

	agentOpts := []arbor.Option{
		arbor.WithLogger(logger),
		arbor.WithLifecycleHooks(observability.LoggingHooks(logger)),
		arbor.WithBlackboard(board),
		arbor.WithExecutor(executor.New(
			executor.WithTransitionFrames(opts.Config.Frames),
			executor.WithLogger(logger),
		)),
	}
	agent := arbor.NewAgent(def.Name, def.Initial, append(agentOpts, extra...)...)

	var errs []error
	for _, s := range def.States {
		errs = append(errs, agent.Define(s, s, bt.NewAction(nil)))
	}
	errs = append(errs, definition.Author(def, agent.Author(), agent.Frame(), logger))
	if err := errors.Join(errs...); err != nil {
		_ = closeBoard()
		return nil, err
	}

	return &session{def: def, scenario: sc, agent: agent, board: board, close: closeBoard}, nil
}

// openBlackboard returns the redis blackboard when an address is
// configured, or an in-memory one.
func openBlackboard(ctx context.Context, cfg config.Config, name string) (blackboard.Blackboard, func() error, error) {
	if cfg.RedisAddr == "" {
		return blackboard.NewMemory(nil), func() error { return nil }, nil
	}
	rb := blackboard.NewRedis(cfg.RedisAddr, name, blackboard.WithPrefix(cfg.RedisPrefix))
	if err := rb.Ping(ctx); err != nil {
		_ = rb.Close()
		return nil, nil, fmt.Errorf("redis blackboard at %s: %w", cfg.RedisAddr, err)
	}
	return rb, rb.Close, nil
}

// ticks picks the simulation length: the configured count, then the
// scenario's, then defaultTicks.
func (s *session) ticks(cfg config.Config) int {
	switch {
	case cfg.Ticks > 0:
		return cfg.Ticks
	case s.scenario.Ticks > 0:
		return s.scenario.Ticks
	}
	return defaultTicks
}

// step applies the scenario facts for tick and updates the agent.
func (s *session) step(ctx context.Context, tick int) error {
	if err := s.scenario.Apply(ctx, tick, s.board); err != nil {
		return err
	}
	return s.agent.Update(ctx)
}
