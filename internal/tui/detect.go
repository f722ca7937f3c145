package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for pkgmeta.
type Mode int

const (
	// ModeNonInteractive is used for pipelines, scripts and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// nonInteractiveEnv lists environment variables that force non-interactive
// mode when set to a non-empty value, except PKGMETA_NON_INTERACTIVE which
// must be "1".
var nonInteractiveEnv = []string{"CI", "NO_COLOR"}

// DetectMode decides whether the template wizard may take over the terminal.
// Both stdin and stdout must be terminals and no override may be set.
func DetectMode() Mode {
	if os.Getenv("PKGMETA_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	for _, name := range nonInteractiveEnv {
		if os.Getenv(name) != "" {
			return ModeNonInteractive
		}
	}

	if !StdinIsTerminal() || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// StdinIsTerminal reports whether stdin is attached to a terminal. When it
// is not, commands read their input (paths or documents) from stdin.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
