// Package detector picks how build progress is shown: an interactive
// terminal UI or plain lines.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive TUI renderer.
	ModeTUI
	// ModeLinear forces the line-based renderer.
	ModeLinear
)

// Values accepted for the output option.
const (
	ValueAuto   = "auto"
	ValueTUI    = "tui"
	ValueLinear = "linear"
	ValueCI     = "ci"
)

// String returns the option value selecting the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return ValueTUI
	case ModeLinear:
		return ValueLinear
	default:
		return ValueAuto
	}
}

// DetectEnvironment returns the mode suited to the process: linear when
// stdout is not a terminal or CI is set, the TUI otherwise.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's choice to the detected mode. Unknown values
// keep the detected mode.
func ResolveMode(autoDetected OutputMode, value string) OutputMode {
	switch value {
	case ValueTUI:
		return ModeTUI
	case ValueLinear, ValueCI:
		return ModeLinear
	default:
		return autoDetected
	}
}

// Valid reports whether value is an accepted output option.
func Valid(value string) bool {
	switch value {
	case ValueAuto, ValueTUI, ValueLinear, ValueCI:
		return true
	}
	return false
}
