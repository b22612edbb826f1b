package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <agent.yaml>",
	Short: "Run an agent against a scripted fact timeline",
	Long: `Runs the agent with the reference executor and prints one line per tick:
the goal, the active state, the pending path and the active tree status.
Facts come from --scenario and are written to the blackboard (redis with --redis).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		scenario, _ := cmd.Flags().GetString("scenario")
		report, _ := cmd.Flags().GetBool("report")
		watch, _ := cmd.Flags().GetBool("watch")

		opts := cli.SimulateOptions{
			DefinitionPath: args[0],
			ScenarioPath:   scenario,
			Config:         cfg,
			Report:         report,
			Watch:          watch,
			Out:            cmd.OutOrStdout(),
			Profile:        tui.Profile(os.Stdout),
			Logger:         logger,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if watch {
			tui.PrintBanner(opts.Out, arbor.Version)
			return cli.RunWatch(ctx, opts)
		}
		_, err = cli.Simulate(ctx, opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("scenario", "", "YAML fact timeline")
	simulateCmd.Flags().Int("ticks", 0, "Number of ticks (default: scenario length, or 10)")
	simulateCmd.Flags().Int("frames", 0, "Transition frames of the reference executor")
	simulateCmd.Flags().String("redis", "", "Redis address for a shared blackboard")
	simulateCmd.Flags().Bool("report", false, "Render a markdown summary")
	simulateCmd.Flags().Bool("watch", false, "Re-run when the definition or scenario changes")
}
