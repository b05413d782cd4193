package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how inetl renders human-facing output.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, log files and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is at the terminal.
	ModeStyled
)

// DetectMode determines whether output written to out may carry colours.
//
// Returns ModePlain if:
//   - NO_COLOR is set (https://no-color.org)
//   - INETL_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - out is nil or not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode(out *os.File) Mode {
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if os.Getenv("INETL_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return ModePlain
	}
	return ModeStyled
}

// IsStyled is a convenience function that returns true if out gets styled output.
func IsStyled(out *os.File) bool {
	return DetectMode(out) == ModeStyled
}
