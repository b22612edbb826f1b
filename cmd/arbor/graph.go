package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/definition"
	"github.com/aretw0/arbor/pkg/executor"
)

var graphCmd = &cobra.Command{
	Use:   "graph <agent.yaml>",
	Short: "Export the machine graph visualization",
	Long: `Compiles the definition and outputs a Mermaid diagram (graph TD) of its goals,
transitions and sub-goal blocks. With --overlay the initial position is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := definition.Load(args[0])
		if err != nil {
			return err
		}
		m, err := definition.Compile(def, executor.New(), definition.FactsFunc(func() map[string]any { return nil }))
		if err != nil {
			return err
		}
		snap := m.Snapshot()

		var overlay *graph.GraphOverlay
		if on, _ := cmd.Flags().GetBool("overlay"); on {
			overlay = graph.OverlayFrom(snap)
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(snap, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("overlay", false, "Highlight the primary, active and pending states")
}
