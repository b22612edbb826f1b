package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/arbor"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration of the serve command.
type ServeOptions struct {
	SimulateOptions
	Addr string
}

// Serve updates the agent at the configured rate and exposes the debug API
// and metrics on Addr until ctx is cancelled. The scenario, if any, is
// replayed once; facts then keep their last values. With Watch set, edits
// to the definition replace the running agent.
func Serve(ctx context.Context, opts ServeOptions) error {
	opts.SimulateOptions = opts.withDefaults()
	logger := opts.Logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(reg)

	s, err := newSession(ctx, opts.SimulateOptions, logger, arbor.WithMetrics(metrics))
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	agents := arbor.NewRegistry()
	if err := agents.Register(s.agent); err != nil {
		return err
	}

	handler := httpAdapter.NewHandler(agents,
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(logger),
	)
	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: handler,
	}
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(opts.Out, "Serving agent '%s' (%s) on %s", s.def.Name, s.agent.ID(), srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	var events <-chan string
	if opts.Watch {
		files := []string{opts.DefinitionPath}
		if opts.ScenarioPath != "" {
			files = append(files, opts.ScenarioPath)
		}
		w, err := NewWatcher(files...)
		if err != nil {
			return err
		}
		defer w.Close()
		events = w.Events
	}

	ticker := time.NewTicker(opts.Config.Rate)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				return srv.Close()
			}
			printSystemMessage(opts.Out, "Server stopped gracefully")
			return nil

		case name, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			next, err := newSession(ctx, opts.SimulateOptions, logger, arbor.WithMetrics(metrics))
			if err != nil {
				logger.Error("reload failed, keeping the running agent", "file", name, "err", err)
				continue
			}
			if err := agents.Replace(s.agent.ID(), next.agent); err != nil {
				_ = next.close()
				return err
			}
			_ = s.close()
			s, tick = next, 0
			printSystemMessage(opts.Out, "Reloaded '%s' as %s", name, s.agent.ID())

		case <-ticker.C:
			if err := s.step(ctx, tick); err != nil {
				logger.Error("update failed", "tick", tick, "err", err)
			}
			tick++
		}
	}
}
