package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/hsm"
)

func gruntSnapshot() hsm.Snapshot {
	return hsm.Snapshot{
		Name:    "grunt",
		Initial: "idle",
		Primary: "chase",
		Active:  "chase",
		Built:   true,
		Pending: []string{"approach"},
		Goals: []hsm.GoalSnapshot{
			{State: "chase", Score: 0.8},
			{State: "flee"},
		},
		Transitions: []hsm.TransitionSnapshot{
			{From: "patrol", To: "idle"},
			{From: "idle", To: "patrol", Priority: 2},
		},
		SubMachines: []hsm.SubMachineSnapshot{
			{
				State: "chase",
				Machine: hsm.Snapshot{
					Name:    "grunt/chase",
					Initial: "approach",
					Transitions: []hsm.TransitionSnapshot{
						{From: "chase", To: "approach"},
						{From: "approach", To: "attack-run", Priority: 1},
					},
				},
			},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(gruntSnapshot(), nil)

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name:     "Header",
			contains: []string{"graph TD\n"},
		},
		{
			name:     "Initial State Shape",
			contains: []string{`grunt__idle(("idle"))`},
		},
		{
			name:     "Goal State Shape",
			contains: []string{`grunt__chase(["chase"])`, `grunt__flee(["flee"])`},
		},
		{
			name:     "Default Shape",
			contains: []string{`grunt__patrol["patrol"]`},
		},
		{
			name: "Priority Labels",
			contains: []string{
				"grunt__patrol --> grunt__idle",
				`grunt__idle -- "p2" --> grunt__patrol`,
			},
		},
		{
			name: "Wildcard Goals",
			contains: []string{
				`grunt__any(("*"))`,
				"grunt__any -.-> grunt__chase",
				"grunt__any -.-> grunt__flee",
			},
		},
		{
			name: "Sub-machine Subgraph",
			contains: []string{
				`subgraph grunt_chase ["chase"]`,
				`grunt_chase__approach(("approach"))`,
				`grunt_chase__approach -- "p1" --> grunt_chase__attack_run`,
				"grunt__chase -.- grunt_chase",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
	assert.NotContains(t, out, "classDef", "no overlay, no styles")
}

func TestGenerateMermaid_DeclaresNodesOnce(t *testing.T) {
	out := graph.GenerateMermaid(gruntSnapshot(), nil)
	assert.Equal(t, 1, strings.Count(out, `grunt__idle(("idle"))`))
	assert.Equal(t, 1, strings.Count(out, `grunt__patrol["patrol"]`))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	snap := gruntSnapshot()
	snap.Active = "patrol"

	out := graph.GenerateMermaid(snap, graph.OverlayFrom(snap))

	assert.Contains(t, out, "classDef active")
	assert.Contains(t, out, "class grunt__approach pending;")
	assert.Contains(t, out, "class grunt__chase primary;")
	assert.Contains(t, out, "class grunt__patrol active;")
}

func TestGenerateMermaid_OverlaySkipsPrimaryWhenActive(t *testing.T) {
	snap := gruntSnapshot()

	out := graph.GenerateMermaid(snap, graph.OverlayFrom(snap))

	assert.NotContains(t, out, "primary;")
	assert.Contains(t, out, "class grunt__chase active;")
}
