package tui

import (
	"bytes"
	"sync"

	"github.com/vito/midterm"
)

// Vterm is a virtual terminal holding the output of one task, so that
// carriage returns and cursor movement from pty output render as they would
// in a real terminal.
type Vterm struct {
	mu    sync.Mutex
	vt    *midterm.Terminal
	width int
	buf   bytes.Buffer
}

// NewVterm creates a new Vterm instance.
func NewVterm() *Vterm {
	return &Vterm{vt: midterm.NewAutoResizingTerminal()}
}

// Write implements io.Writer.
func (v *Vterm) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.Write(p)
}

// SetWidth resizes the terminal to w columns.
func (v *Vterm) SetWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if w < 1 {
		w = 1
	}
	v.width = w
	v.vt.ResizeX(w)
}

// Width returns the current column count, or 0 before the first resize.
func (v *Vterm) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// UsedHeight returns the number of lines written so far.
func (v *Vterm) UsedHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.UsedHeight()
}

// Render returns every written line.
func (v *Vterm) Render() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
	for row := range v.vt.UsedHeight() {
		if row > 0 {
			_ = v.buf.WriteByte('\n')
		}
		_ = v.vt.RenderLine(&v.buf, row)
	}
	return v.buf.String()
}
