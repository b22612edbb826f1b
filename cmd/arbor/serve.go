package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve <agent.yaml>",
	Short: "Run an agent continuously behind a debug API",
	Long: `Updates the agent at --rate and exposes /agents, /agents/{id},
/agents/{id}/graph and /metrics over HTTP.`,
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
		watch, _ := cmd.Flags().GetBool("watch")

		out := cmd.OutOrStdout()
		tui.PrintBanner(out, arbor.Version)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			SimulateOptions: cli.SimulateOptions{
				DefinitionPath: args[0],
				ScenarioPath:   scenario,
				Config:         cfg,
				Watch:          watch,
				Out:            out,
				Profile:        tui.Profile(os.Stdout),
				Logger:         logger,
			},
			Addr: cfg.MetricsAddr,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("scenario", "", "YAML fact timeline replayed once")
	serveCmd.Flags().String("addr", ":9090", "Listen address of the debug API")
	serveCmd.Flags().Duration("rate", 0, "Interval between updates (default 100ms)")
	serveCmd.Flags().Int("frames", 0, "Transition frames of the reference executor")
	serveCmd.Flags().String("redis", "", "Redis address for a shared blackboard")
	serveCmd.Flags().Bool("watch", false, "Replace the agent when the definition changes")
}
