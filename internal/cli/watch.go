package cli

import (
	"context"
	"errors"
	"time"
)

// RunWatch re-runs the simulation whenever the definition or the scenario
// changes, until ctx is cancelled.
func RunWatch(ctx context.Context, opts SimulateOptions) error {
	opts = opts.withDefaults()
	logger := opts.Logger

	files := []string{opts.DefinitionPath}
	if opts.ScenarioPath != "" {
		files = append(files, opts.ScenarioPath)
	}
	w, err := NewWatcher(files...)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("starting watcher", "files", files)
	for {
		if _, err := Simulate(ctx, opts); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error("simulation failed", "err", err)
			printSystemMessage(opts.Out, "Simulation failed: %v", err)
		}
		printSystemMessage(opts.Out, "Waiting for changes...")

		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			printSystemMessage(opts.Out, "Change detected in '%s'.", name)
			// Let the file system settle before reloading.
			time.Sleep(debounce)
		case err := <-w.Errors:
			logger.Warn("watcher error", "err", err)
		}
	}
}
