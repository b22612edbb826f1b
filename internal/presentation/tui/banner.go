package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the arbor ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Canopy greens fading to bark.
	lines := []struct {
		text  string
		color string
	}{
		{"             _                ", "#86efac"},
		{"   __ _ _ __| |__   ___  _ __ ", "#4ade80"},
		{"  / _` | '__| '_ \\ / _ \\| '__|", "#22c55e"},
		{" | (_| | |  | |_) | (_) | |   ", "#16a34a"},
		{"  \\__,_|_|  |_.__/ \\___/|_|   ", "#a16207"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
