package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/pkg/definition"
)

var validateCmd = &cobra.Command{
	Use:   "validate <agent.yaml>",
	Short: "Check an agent definition for consistency",
	Long: `Loads the definition and reports unknown states, a missing initial state,
invalid expressions and states no goal or transition can reach.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := definition.Load(args[0])
		if err != nil {
			return err
		}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		out := cmd.OutOrStdout()
		if unreachable := def.Unreachable(); len(unreachable) > 0 {
			fmt.Fprintf(out, "Warning: unreachable states: %s\n", strings.Join(unreachable, ", "))
		}
		fmt.Fprintf(out, "Definition %q is valid! ✅\n", def.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
