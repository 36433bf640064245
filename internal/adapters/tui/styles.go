package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/composite/internal/ui"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(ui.Accent).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(ui.Accent).
			Foreground(lipgloss.Color("#FFFFFF"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(ui.Muted)

	listStyle = lipgloss.NewStyle().
			PaddingRight(2)

	logStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ui.Muted).
			PaddingLeft(1)
)

func statusStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color)
}
