// Package linear provides a line-oriented renderer: every line of task output
// is printed with the task's identity path as prefix.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/ui"
)

// Renderer implements ports.Renderer. Task output goes to stdout, progress
// lines to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState
}

var _ ports.Renderer = (*Renderer)(nil)

type taskState struct {
	name      string
	startTime time.Time
	pending   bytes.Buffer
}

// NewRenderer creates a Renderer. Nil writers mean stdout and stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: ui.NewOutput(stderr),
		tasks:  make(map[string]*taskState),
	}
}

// Start does nothing; the renderer is synchronous.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop prints partial lines of tasks that are still running.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// Wait does nothing; the renderer is synchronous.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the requested tasks.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.stderr, "Running %d task(s): %s\n", len(tasks), strings.Join(tasks, ", "))
}

// OnTaskStart prints that a task started.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}
	icon, color := ui.StatusIcon(domain.StatusRunning)
	_, _ = fmt.Fprintf(r.stderr, "%s %s started\n", r.prefix(name), ui.Paint(r.output, icon, color))
}

// OnTaskLog prints the complete lines of data; a trailing partial line waits
// for the next chunk or for the task to end.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	task.pending.Write(data)

	for {
		idx := bytes.IndexByte(task.pending.Bytes(), '\n')
		if idx < 0 {
			return
		}
		line := task.pending.Next(idx + 1)
		r.printLineLocked(task.name, line)
	}
}

// OnTaskComplete prints the rest of the task output and its outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)
	r.flushLocked(task)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	if err != nil {
		icon, color := ui.StatusIcon(domain.StatusFailed)
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
			r.prefix(task.name), ui.Paint(r.output, icon, color), duration, err)
		return
	}
	icon, color := ui.StatusIcon(domain.StatusCompleted)
	_, _ = fmt.Fprintf(r.stderr, "%s %s completed in %v\n",
		r.prefix(task.name), ui.Paint(r.output, icon, color), duration)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String("[" + name + "]").Faint().String()
}

// flushLocked must be called with mu held.
func (r *Renderer) flushLocked(task *taskState) {
	if task.pending.Len() > 0 {
		r.printLineLocked(task.name, task.pending.Bytes())
		task.pending.Reset()
	}
}

// printLineLocked must be called with mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
