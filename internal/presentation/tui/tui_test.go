package tui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusColor_AsciiIsPlain(t *testing.T) {
	for _, s := range []string{"success", "failure", "running", "pending", "idle"} {
		assert.Equal(t, s, StatusColor(termenv.Ascii, s))
	}
	assert.Equal(t, "chase", Highlight(termenv.Ascii, "chase"))
}

func TestStatusColor_TrueColor(t *testing.T) {
	out := StatusColor(termenv.TrueColor, "failure")
	assert.Contains(t, out, "failure")
	assert.NotEqual(t, "failure", out)

	assert.Equal(t, "idle", StatusColor(termenv.TrueColor, "idle"))
}

func TestProfile_NonTerminal(t *testing.T) {
	assert.Equal(t, termenv.Ascii, Profile(nil))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), "|_.__/")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Report\n\n* one\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Report")
}
