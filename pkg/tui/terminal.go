package tui

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt is requested without a terminal.
var ErrNotInteractive = errors.New("interactive mode requires a terminal")

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// RequireInteractive returns ErrNotInteractive unless IsInteractive.
func RequireInteractive() error {
	if !IsInteractive() {
		return ErrNotInteractive
	}
	return nil
}
