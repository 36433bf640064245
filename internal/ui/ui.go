// Package ui holds the terminal styling shared by the logger and the
// renderers: the color profile, the palette and the status icons.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/composite/internal/core/domain"
)

// Palette.
var (
	Accent  = lipgloss.Color("#8B5CF6")
	Muted   = lipgloss.Color("#667085")
	Success = lipgloss.Color("#22A06B")
	Failure = lipgloss.Color("#D93025")
	Caution = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	IconDone    = "✓"
	IconFailed  = "✗"
	IconWarning = "!"
	IconSkipped = "~"
	IconRunning = "●"
	IconQueued  = "○"
)

// Profile returns the color profile to render with. NO_COLOR always wins; otherwise
// the terminal's capabilities decide.
func Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// NewOutput creates a termenv.Output on w using Profile. A nil writer means stderr.
func NewOutput(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(Profile()), termenv.WithTTY(true))
}

// Paint renders s in color on out.
func Paint(out *termenv.Output, s string, color lipgloss.Color) string {
	return out.String(s).Foreground(out.Color(string(color))).String()
}

// StatusIcon returns the icon and color used for a task status.
func StatusIcon(status domain.TaskStatus) (string, lipgloss.Color) {
	switch status {
	case domain.StatusCompleted:
		return IconDone, Success
	case domain.StatusFailed:
		return IconFailed, Failure
	case domain.StatusSkipped:
		return IconSkipped, Caution
	case domain.StatusRunning:
		return IconRunning, Accent
	default:
		return IconQueued, Muted
	}
}
