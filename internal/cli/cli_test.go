package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/config"
)

const (
	gruntDef      = "../../examples/grunt/agent.yaml"
	gruntScenario = "../../examples/grunt/scenario.yaml"
)

// syncBuffer is a bytes.Buffer safe for the server goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func gruntOptions(out *bytes.Buffer) SimulateOptions {
	return SimulateOptions{
		DefinitionPath: gruntDef,
		ScenarioPath:   gruntScenario,
		Config:         config.Default(),
		Out:            out,
		Profile:        termenv.Ascii,
	}
}

func TestSimulate_Grunt(t *testing.T) {
	var out bytes.Buffer
	res, err := Simulate(context.Background(), gruntOptions(&out))
	require.NoError(t, err)

	require.Len(t, res.Records, 12, "scenario decides the length")
	assert.Equal(t, "grunt", res.Agent)
	assert.Equal(t, "patrol", res.Records[0].Goal)
	assert.Equal(t, "chase", res.Records[3].Goal)
	assert.Equal(t, []string{"approach"}, res.Records[3].Pending)
	assert.Equal(t, "approach", res.Records[4].Active)
	assert.Equal(t, "attack", res.Records[7].Active)
	assert.Equal(t, "flee", res.Records[10].Goal)
	assert.Equal(t, "flee", res.Final.Machine.Active)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[3], "goal=chase")
	assert.Contains(t, lines[3], "pending=approach")
	assert.Contains(t, lines[0], "tree=success")
}

func TestSimulate_TicksOverrideScenario(t *testing.T) {
	var out bytes.Buffer
	opts := gruntOptions(&out)
	opts.Config.Ticks = 3

	res, err := Simulate(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
}

func TestSimulate_WithoutScenarioUsesDefaultTicks(t *testing.T) {
	var out bytes.Buffer
	opts := gruntOptions(&out)
	opts.ScenarioPath = ""

	res, err := Simulate(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, res.Records, defaultTicks)
}

func TestSimulate_TransitionFrames(t *testing.T) {
	var out bytes.Buffer
	opts := gruntOptions(&out)
	opts.Config.Frames = 2

	res, err := Simulate(context.Background(), opts)
	require.NoError(t, err)
	assert.NotEqual(t, "approach", res.Records[4].Active, "switch still in progress")
}

func TestSimulate_InvalidDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\ninitial: nowhere\nstates: [a]\n"), 0o644))

	_, err := Simulate(context.Background(), SimulateOptions{DefinitionPath: path, Config: config.Default()})
	assert.ErrorContains(t, err, `definition "bad"`)
}

func TestSimulate_Report(t *testing.T) {
	var out bytes.Buffer
	opts := gruntOptions(&out)
	opts.Report = true

	_, err := Simulate(context.Background(), opts)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Simulation")
}

func TestRenderReport(t *testing.T) {
	var out bytes.Buffer
	res, err := Simulate(context.Background(), gruntOptions(&out))
	require.NoError(t, err)

	md := RenderReport(res)
	assert.Contains(t, md, "# Simulation: grunt")
	assert.Contains(t, md, "| 3 | chase | chase | approach |")
	assert.Contains(t, md, "| Goal | Last score |")
	assert.Contains(t, md, "Final goal **flee**")
}

func TestWatcher_ReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "agent.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(watched, []byte("a: 1\n"), 0o644))

	w, err := NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("b: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("a: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		abs, _ := filepath.Abs(watched)
		assert.Equal(t, abs, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the watched file")
	}

	require.NoError(t, w.Close())
	for range w.Events {
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	var out syncBuffer
	opts := ServeOptions{
		SimulateOptions: SimulateOptions{
			DefinitionPath: gruntDef,
			ScenarioPath:   gruntScenario,
			Config:         config.Default(),
			Out:            &out,
		},
		Addr: "127.0.0.1:0",
	}
	opts.Config.Rate = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, Serve(ctx, opts))
	assert.Contains(t, out.String(), "Serving agent 'grunt'")
}
