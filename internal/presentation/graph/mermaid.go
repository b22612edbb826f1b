package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/hsm"
)

// GraphOverlay contains the runtime position of the root machine to
// highlight on the graph.
type GraphOverlay struct {
	Primary string
	Active  string
	Pending []string
}

// OverlayFrom returns the overlay matching snap.
func OverlayFrom(snap hsm.Snapshot) *GraphOverlay {
	return &GraphOverlay{Primary: snap.Primary, Active: snap.Active, Pending: snap.Pending}
}

// GenerateMermaid produces a Mermaid flowchart of a machine snapshot.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Goal state: ([Stadium])
// - Wildcard goal source: (("*")) with dotted edges
// - Default: [Rectangle]
// Each sub-machine is drawn as a subgraph named after its owning state.
// Overlay styles (primary, active, pending) apply to the root machine.
func GenerateMermaid(snap hsm.Snapshot, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := sanitizeMermaidID(snap.Name)
	writeMachine(&sb, snap, root, "    ")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef pending fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef primary fill:#fff3e0,stroke:#e65100,stroke-width:2px,stroke-dasharray:4,color:#000;\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.Pending {
			id := nodeID(root, s)
			if s != "" && !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s pending;\n", id))
			}
		}
		if overlay.Primary != "" && overlay.Primary != overlay.Active {
			sb.WriteString(fmt.Sprintf("    class %s primary;\n", nodeID(root, overlay.Primary)))
		}
		if overlay.Active != "" {
			sb.WriteString(fmt.Sprintf("    class %s active;\n", nodeID(root, overlay.Active)))
		}
	}

	return sb.String()
}

func writeMachine(sb *strings.Builder, snap hsm.Snapshot, prefix, indent string) {
	goals := make(map[string]bool, len(snap.Goals))
	for _, g := range snap.Goals {
		goals[g.State] = true
	}

	declared := make(map[string]bool)
	declare := func(state string) {
		if state == "" || declared[state] {
			return
		}
		declared[state] = true
		opener, closer := "[", "]"
		switch {
		case state == snap.Initial:
			opener, closer = "((", "))"
		case goals[state]:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\"%s\"%s\n", indent, nodeID(prefix, state), opener, state, closer))
	}

	declare(snap.Initial)
	for _, g := range snap.Goals {
		declare(g.State)
	}
	for _, t := range snap.Transitions {
		declare(t.From)
		declare(t.To)
	}

	for _, t := range snap.Transitions {
		arrow := "-->"
		if t.Priority != 0 {
			arrow = fmt.Sprintf("-- \"p%d\" -->", t.Priority)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s %s\n", indent, nodeID(prefix, t.From), arrow, nodeID(prefix, t.To)))
	}

	if len(snap.Goals) > 0 {
		wildcard := prefix + "__any"
		sb.WriteString(fmt.Sprintf("%s%s((\"*\"))\n", indent, wildcard))
		for _, g := range snap.Goals {
			sb.WriteString(fmt.Sprintf("%s%s -.-> %s\n", indent, wildcard, nodeID(prefix, g.State)))
		}
	}

	for _, sub := range snap.SubMachines {
		subPrefix := sanitizeMermaidID(sub.Machine.Name)
		sb.WriteString(fmt.Sprintf("%ssubgraph %s [\"%s\"]\n", indent, subPrefix, sub.State))
		writeMachine(sb, sub.Machine, subPrefix, indent+"    ")
		sb.WriteString(indent + "end\n")
		if declared[sub.State] {
			sb.WriteString(fmt.Sprintf("%s%s -.- %s\n", indent, nodeID(prefix, sub.State), subPrefix))
		}
	}
}

func nodeID(prefix, state string) string {
	return prefix + "__" + sanitizeMermaidID(state)
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "\"", "_")
	return r.Replace(id)
}
