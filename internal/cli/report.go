package cli

import (
	"fmt"
	"strings"
)

// RenderReport builds the markdown summary of a simulation.
func RenderReport(res *Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Simulation: %s\n\n", res.Agent)
	fmt.Fprintf(&sb, "Ran **%d** ticks. Final goal **%s**, active **%s**.\n\n",
		len(res.Records), res.Final.Machine.Primary, res.Final.Machine.Active)

	sb.WriteString("## Trace\n\n")
	sb.WriteString("| Tick | Goal | Active | Pending |\n")
	sb.WriteString("|---:|---|---|---|\n")
	for _, r := range res.Records {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", r.Tick, r.Goal, r.Active, strings.Join(r.Pending, " > "))
	}

	if len(res.Final.Machine.Goals) > 0 {
		sb.WriteString("\n## Goals\n\n")
		sb.WriteString("| Goal | Last score |\n")
		sb.WriteString("|---|---:|\n")
		for _, g := range res.Final.Machine.Goals {
			fmt.Fprintf(&sb, "| %s | %.3f |\n", g.State, g.Score)
		}
	}

	changes := 0
	for i := 1; i < len(res.Records); i++ {
		if res.Records[i].Active != res.Records[i-1].Active {
			changes++
		}
	}
	fmt.Fprintf(&sb, "\n%d state changes.\n", changes)
	return sb.String()
}
