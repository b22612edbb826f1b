package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

// SimulateOptions contains the configuration of the simulate command.
// Profile colors the trace; use tui.Profile to detect it, as the zero value
// is TrueColor.
type SimulateOptions struct {
	DefinitionPath string
	ScenarioPath   string
	Config         config.Config
	Report         bool
	Watch          bool
	Out            io.Writer
	Profile        termenv.Profile
	Logger         *slog.Logger
}

func (o SimulateOptions) withDefaults() SimulateOptions {
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// TickRecord is the position of the agent after one update.
type TickRecord struct {
	Tick    int
	Goal    string
	Active  string
	Pending []string
	Tree    string
}

// Result is the outcome of a simulation.
type Result struct {
	Agent   string
	Records []TickRecord
	Final   arbor.Snapshot
}

// Simulate runs the definition for the configured number of ticks, feeding
// the scenario facts into the blackboard, and writes one trace line per tick.
func Simulate(ctx context.Context, opts SimulateOptions) (*Result, error) {
	opts = opts.withDefaults()
	s, err := newSession(ctx, opts, opts.Logger)
	if err != nil {
		return nil, err
	}
	defer s.close()

	res := &Result{Agent: s.def.Name}
	for tick, n := 0, s.ticks(opts.Config); tick < n; tick++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := s.step(ctx, tick); err != nil {
			return res, fmt.Errorf("tick %d: %w", tick, err)
		}
		rec := record(tick, s.agent.Snapshot())
		res.Records = append(res.Records, rec)
		printTick(opts.Out, opts.Profile, rec)
	}
	res.Final = s.agent.Snapshot()

	if opts.Report {
		out, err := tui.NewRenderer()(RenderReport(res))
		if err != nil {
			return res, fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(opts.Out, out)
	}
	return res, nil
}

func record(tick int, snap arbor.Snapshot) TickRecord {
	rec := TickRecord{
		Tick:    tick,
		Goal:    snap.Machine.Primary,
		Active:  snap.Machine.Active,
		Pending: snap.Machine.Pending,
	}
	for _, t := range snap.Trees {
		if t.Active {
			rec.Tree = t.Last
		}
	}
	return rec
}

func printTick(w io.Writer, p termenv.Profile, rec TickRecord) {
	pending := "-"
	if len(rec.Pending) > 0 {
		pending = strings.Join(rec.Pending, " > ")
	}
	tree := rec.Tree
	if tree == "" {
		tree = "-"
	}
	fmt.Fprintf(w, "%4d  goal=%-10s active=%-10s %s=%-20s tree=%s\n",
		rec.Tick,
		tui.Highlight(p, rec.Goal),
		tui.Highlight(p, rec.Active),
		tui.StatusColor(p, "pending"),
		pending,
		tui.StatusColor(p, tree),
	)
}
