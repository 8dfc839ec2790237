// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both interactive terminals.
// This is the canonical implementation for terminal detection across the codebase.
func IsInteractive() bool {
	return bothTerminals(os.Stdin, os.Stdout)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func bothTerminals(in *os.File, out *os.File) bool {
	return IsTerminal(in) && IsTerminal(out)
}
