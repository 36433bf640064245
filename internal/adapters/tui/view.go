package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/ui"
)

// View renders the UI. Once the build is done only the summary remains.
func (m *Model) View() string {
	if m.Done {
		return m.summary()
	}
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.taskList(),
		m.logPane(),
	)
}

func (m *Model) taskList() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("TASKS") + "\n\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Tasks))
	start := min(m.ListOffset, end)
	for i := start; i < end; i++ {
		s.WriteString(m.renderTaskRow(i, m.Tasks[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderTaskRow(index int, node *TaskNode) string {
	icon, color := ui.StatusIcon(node.Status)
	iconView := statusStyle(color).Render(icon)
	if node.Status == domain.StatusRunning {
		iconView = m.spinner.View()
	}

	cursor := "  "
	name := node.Name
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		name = selectedStyle.Render(name)
	}
	return cursor + iconView + " " + name
}

func (m *Model) logPane() string {
	node := m.selected()
	if node == nil {
		return logStyle.Render(titleStyle.Render("LOGS (Waiting...)"))
	}

	mode := "Manual"
	if m.FollowMode {
		mode = "Following"
	}
	header := titleStyle.Render(fmt.Sprintf("LOGS: %s (%s)", node.Name, mode))

	return logStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.logs.View()))
}

// summary lists every task with its outcome.
func (m *Model) summary() string {
	var s strings.Builder
	for _, node := range m.Tasks {
		icon, color := ui.StatusIcon(node.Status)
		s.WriteString(statusStyle(color).Render(icon) + " " + node.Name)
		switch node.Status {
		case domain.StatusCompleted:
			s.WriteString(mutedStyle.Render(" " + node.Duration().Round(time.Millisecond).String()))
		case domain.StatusFailed:
			s.WriteString(mutedStyle.Render(fmt.Sprintf(" %s: %v", node.Duration().Round(time.Millisecond), node.Err)))
		case domain.StatusSkipped:
			s.WriteString(mutedStyle.Render(" skipped"))
		}
		s.WriteString("\n")
	}
	return s.String()
}
