package tui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Profile returns the color profile for f, or Ascii when f is not a terminal.
func Profile(f *os.File) termenv.Profile {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// StatusColor colors a tree status or state label for the tick trace.
// Unknown values are returned unstyled.
func StatusColor(p termenv.Profile, status string) string {
	var color string
	switch status {
	case "success":
		color = "#22c55e"
	case "failure":
		color = "#ef4444"
	case "running":
		color = "#eab308"
	case "pending":
		color = "#38bdf8"
	default:
		return status
	}
	return termenv.String(status).Foreground(p.Color(color)).String()
}

// Highlight renders s in bold, for goal and state names.
func Highlight(p termenv.Profile, s string) string {
	if p == termenv.Ascii {
		return s
	}
	return termenv.String(s).Bold().String()
}
