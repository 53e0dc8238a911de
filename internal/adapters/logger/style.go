package logger

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Colors.
const (
	slate  = "#667085"
	red    = "#D93025"
	yellow = "#F59E0B"
)

// Icons.
const (
	iconWarning = "!"
	iconCross   = "✗"
)

// colorProfile honours NO_COLOR and otherwise detects the terminal.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func newOutput(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(colorProfile()),
		termenv.WithTTY(true),
	)
}
