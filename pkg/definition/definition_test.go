package definition_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/definition"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/executor"
	"github.com/aretw0/arbor/pkg/hsm"
)

const gruntPath = "../../examples/grunt/agent.yaml"

func TestLoad_Grunt(t *testing.T) {
	def, err := definition.Load(gruntPath)
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	assert.Equal(t, "grunt", def.Name)
	assert.Equal(t, "idle", def.Initial)
	assert.Len(t, def.Goals, 4)
	require.Len(t, def.SubGoals, 1)
	assert.Equal(t, "chase", def.SubGoals[0].State)
	assert.Len(t, def.SubGoals[0].Transitions, 3)
	assert.Empty(t, def.Unreachable())
}

func TestParse_WeakTyping(t *testing.T) {
	def, err := definition.Parse([]byte(`
name: t
initial: a
states: [a, b]
transitions:
  - {from: a, to: b, priority: "3"}
`))
	require.NoError(t, err)
	assert.Equal(t, 3, def.Transitions[0].Priority)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := definition.Parse([]byte("name: t\ninital: a\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "inital")
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.json")
	doc := `{"name": "j", "initial": "a", "states": ["a", "b"],
		"transitions": [{"from": "a", "to": "b", "score": "1"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	def, err := definition.Load(path)
	require.NoError(t, err)
	require.NoError(t, def.Validate())
	assert.Equal(t, "j", def.Name)
}

func TestValidate_ReportsEverything(t *testing.T) {
	def, err := definition.Parse([]byte(`
initial: missing
states: [a, a, b]
goals:
  - state: ghost
  - state: a
    score: "1 +"
subgoals:
  - state: b
    transitions:
      - {to: nowhere}
`))
	require.NoError(t, err)

	err = def.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"name is empty",
		`state "a" declared twice`,
		`initial state "missing" is not declared`,
		`goal "ghost" is not declared`,
		"needs a score or factors",
		`expression "1 +"`,
		`transition target "nowhere" is not declared`,
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestUnreachable(t *testing.T) {
	def, err := definition.Parse([]byte(`
name: t
initial: a
states: [a, b, c, d]
goals:
  - {state: c, score: "1"}
transitions:
  - {from: a, to: b}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, def.Unreachable())
}

func TestCompile_Grunt(t *testing.T) {
	ctx := context.Background()
	def, err := definition.Load(gruntPath)
	require.NoError(t, err)

	bb := blackboard.NewMemory(map[string]any{
		"visible": false, "bored": true, "distance": 80, "health": 100,
	})
	frame := blackboard.NewFrame()
	exec := executor.New()

	m, err := definition.Compile(def, exec, frame)
	require.NoError(t, err)
	assert.Equal(t, "grunt", m.Name())
	assert.Equal(t, 6, m.IDs().Len())

	step := func() {
		t.Helper()
		require.NoError(t, frame.Refresh(ctx, bb))
		require.NoError(t, m.Update())
	}

	step()
	assert.Equal(t, "patrol", m.PrimaryState())

	require.NoError(t, bb.Set(ctx, "visible", true))
	step()
	assert.Equal(t, "chase", m.PrimaryState())
	assert.Equal(t, []string{"approach"}, m.Pending())
	step()
	assert.Equal(t, "approach", m.ActiveState())

	require.NoError(t, bb.Set(ctx, "distance", 8))
	step()
	assert.Equal(t, []string{"attack"}, m.Pending())
	step()
	assert.Equal(t, "attack", m.ActiveState())

	require.NoError(t, bb.Set(ctx, "health", 10))
	step()
	assert.Equal(t, "flee", m.PrimaryState())
	assert.Equal(t, "flee", m.ActiveState())
}

func TestCompile_InvalidDefinition(t *testing.T) {
	def := &definition.Definition{Name: "bad"}
	_, err := definition.Compile(def, executor.New(), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, `definition "bad"`)
}

func TestCompile_FailingExpressionScoresZero(t *testing.T) {
	def, err := definition.Parse([]byte(`
name: t
initial: a
states: [a, b]
goals:
  - {state: b, score: "missing ? 1 : 0"}
transitions:
  - {from: a, to: b, score: "0"}
`))
	require.NoError(t, err)

	m, err := definition.Compile(def, executor.New(), definition.FactsFunc(func() map[string]any { return nil }))
	require.NoError(t, err)
	require.NoError(t, m.Update())
	assert.Equal(t, "a", m.PrimaryState())
	assert.Zero(t, m.Goals()[0].LastScore)
}

func TestScenario(t *testing.T) {
	sc, err := definition.LoadScenario("../../examples/grunt/scenario.yaml")
	require.NoError(t, err)
	assert.Equal(t, 12, sc.Ticks)

	ctx := context.Background()
	bb := &blackboard.Memory{}
	require.NoError(t, sc.Apply(ctx, 0, bb))
	v, ok, err := bb.Get(ctx, "distance")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 80, v)

	require.NoError(t, sc.Apply(ctx, 3, bb))
	v, _, _ = bb.Get(ctx, "visible")
	assert.Equal(t, true, v)

	sc, err = definition.ParseScenario([]byte("ticks: 2\nfacts:\n  - {at: 1, delete: [visible]}\n"))
	require.NoError(t, err)
	require.NoError(t, sc.Apply(ctx, 1, bb))
	_, ok, _ = bb.Get(ctx, "visible")
	assert.False(t, ok)
}

const duplicateTransitions = `
name: t
initial: a
states: [a, b]
transitions:
  - {from: a, to: b}
  - {from: a, to: b, score: "2"}
`

func TestValidate_DuplicateTransition(t *testing.T) {
	def, err := definition.Parse([]byte(duplicateTransitions))
	require.NoError(t, err)

	assert.ErrorContains(t, def.Validate(), "root transition a -> b: declared twice")
}

func TestAuthor_DuplicateTransitionIsLoggedAndSkipped(t *testing.T) {
	def, err := definition.Parse([]byte(duplicateTransitions))
	require.NoError(t, err)

	m := hsm.New[string](executor.New(), def.Initial)
	for _, s := range def.States {
		require.NoError(t, m.AddState(s, s, hsm.Callbacks{}))
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	require.NoError(t, definition.Author(def, dsl.New(m), nil, logger))
	require.Len(t, m.Transitions(), 1, "the first declaration wins")
	assert.Contains(t, buf.String(), "authoring errors ignored")
	assert.Contains(t, buf.String(), "duplicate transition")

	require.NoError(t, m.Update())
	require.NoError(t, m.Update())
	assert.Equal(t, "b", m.ActiveState())
}
