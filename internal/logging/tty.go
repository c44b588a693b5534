package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// fder is implemented by *os.File and wrappers that expose the descriptor.
type fder interface {
	Fd() uintptr
}

// IsTTY reports whether w is attached to a terminal.
func IsTTY(w any) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w. Colors
// are off when w is not a terminal, when NO_COLOR is set (any value, see
// https://no-color.org) or when TERM is "dumb".
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTTY(w))
}

func colorAllowed(isTTY bool) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return isTTY && os.Getenv("TERM") != "dumb"
}

// ConfigureColor points fatih/color's global switch at w, so plain
// color.Color values used for command output follow the same rules as the
// log handler.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
