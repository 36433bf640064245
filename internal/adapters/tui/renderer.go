package tui

import (
	"bytes"
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
)

// Renderer runs the Bubble Tea program as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	errCh   chan error
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		final, err := r.program.Run()
		if m, ok := final.(*Model); ok && err == nil && m.Interrupted {
			err = domain.ErrInterrupted
		}
		r.errCh <- err
	}()
	return nil
}

// Stop marks the build as done; the program prints the summary and exits.
func (r *Renderer) Stop() error {
	r.program.Send(MsgDone{})
	return nil
}

// Wait blocks until the TUI has terminated. It returns domain.ErrInterrupted
// when the user quit before the build was done.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit adds the planned tasks to the list.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.program.Send(MsgPlan{Tasks: tasks})
}

// OnTaskStart forwards task start events to the TUI.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(MsgTaskStart{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnTaskLog forwards task output to the TUI. data is copied since the
// caller reuses it once OnTaskLog returns.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.program.Send(MsgTaskLog{
		SpanID: spanID,
		Data:   bytes.Clone(data),
	})
}

// OnTaskComplete forwards task completion events to the TUI.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgTaskComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
