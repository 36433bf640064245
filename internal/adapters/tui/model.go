// Package tui provides the interactive terminal view of a running build:
// the tasks of every participating build on the left, the output of the
// selected task on the right.
package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/ui"
)

const (
	taskListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// TaskNode is one row of the task list.
type TaskNode struct {
	Name      string
	Status    domain.TaskStatus
	Term      *Vterm
	StartTime time.Time
	EndTime   time.Time
	Err       error
}

// Duration returns how long the task ran, or 0 if it has not finished.
func (n *TaskNode) Duration() time.Duration {
	if n.StartTime.IsZero() || n.EndTime.IsZero() {
		return 0
	}
	return n.EndTime.Sub(n.StartTime)
}

// Model is the Bubble Tea model of the build view.
type Model struct {
	Tasks       []*TaskNode
	TaskMap     map[string]*TaskNode
	SpanMap     map[string]*TaskNode
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	LogWidth    int
	FollowMode  bool
	Done        bool
	Interrupted bool

	logs    viewport.Model
	spinner spinner.Model
}

// NewModel creates a Model rendering with the color profile of w.
// A nil writer means stderr.
func NewModel(w io.Writer) *Model {
	lipgloss.SetColorProfile(ui.NewOutput(w).Profile)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle(ui.Accent)

	return &Model{
		TaskMap:    make(map[string]*TaskNode),
		SpanMap:    make(map[string]*TaskNode),
		FollowMode: true,
		logs:       viewport.New(0, 0),
		spinner:    s,
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgPlan:
		for _, name := range msg.Tasks {
			m.addTask(name)
		}

	case MsgTaskStart:
		node := m.addTask(msg.Name)
		node.Status = domain.StatusRunning
		node.StartTime = msg.StartTime
		m.SpanMap[msg.SpanID] = node
		if m.FollowMode {
			m.selectTask(node)
		}

	case MsgTaskLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Term.Write(msg.Data)
			if node == m.selected() {
				m.refreshLogs()
			}
		}

	case MsgTaskComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.EndTime = msg.EndTime
			node.Err = msg.Err
			node.Status = domain.StatusCompleted
			if msg.Err != nil {
				node.Status = domain.StatusFailed
			}
		}

	case MsgDone:
		// Planned tasks that never started were skipped.
		for _, node := range m.Tasks {
			if !node.Status.IsComplete() {
				node.Status = domain.StatusSkipped
			}
		}
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Interrupted = true
		return m, tea.Quit
	case "k", "up":
		if m.SelectedIdx > 0 {
			m.FollowMode = false
			m.selectIndex(m.SelectedIdx - 1)
		}
	case "j", "down":
		if m.SelectedIdx < len(m.Tasks)-1 {
			m.FollowMode = false
			m.selectIndex(m.SelectedIdx + 1)
		}
	case "esc":
		m.FollowMode = true
		for i, node := range m.Tasks {
			if node.Status == domain.StatusRunning {
				m.selectIndex(i)
				break
			}
		}
	default:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	listWidth := int(float64(width) * taskListWidthRatio)
	m.LogWidth = width - listWidth - logPaneBorderWidth

	headerHeight := lipgloss.Height(titleStyle.Render("TASKS") + "\n\n")
	m.ListHeight = max(height-headerHeight, 1)

	m.logs.Width = m.LogWidth
	m.logs.Height = max(height-lipgloss.Height(titleStyle.Render("LOGS")), 1)

	for _, node := range m.Tasks {
		node.Term.SetWidth(m.LogWidth)
	}
	m.ensureVisible()
	m.refreshLogs()
}

// addTask returns the node for name, appending it if it is new.
func (m *Model) addTask(name string) *TaskNode {
	if node, ok := m.TaskMap[name]; ok {
		return node
	}
	node := &TaskNode{Name: name, Status: domain.StatusScheduled, Term: NewVterm()}
	if m.LogWidth > 0 {
		node.Term.SetWidth(m.LogWidth)
	}
	m.Tasks = append(m.Tasks, node)
	m.TaskMap[name] = node
	return node
}

func (m *Model) selected() *TaskNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Tasks) {
		return m.Tasks[m.SelectedIdx]
	}
	return nil
}

func (m *Model) selectTask(node *TaskNode) {
	for i, t := range m.Tasks {
		if t == node {
			m.selectIndex(i)
			return
		}
	}
}

func (m *Model) selectIndex(i int) {
	changed := i != m.SelectedIdx
	m.SelectedIdx = i
	m.ensureVisible()
	if changed {
		m.logs.SetContent("")
	}
	m.refreshLogs()
	if changed || m.FollowMode {
		m.logs.GotoBottom()
	}
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

// refreshLogs shows the output of the selected task, staying at the bottom
// when the view was there.
func (m *Model) refreshLogs() {
	node := m.selected()
	if node == nil {
		return
	}
	atBottom := m.logs.AtBottom()
	m.logs.SetContent(node.Term.Render())
	if atBottom {
		m.logs.GotoBottom()
	}
}
