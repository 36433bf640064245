// Package renderer chooses, per invocation, which renderer shows build
// progress.
package renderer

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/composite/internal/adapters/detector"
	"go.trai.ch/composite/internal/core/ports"
)

// Selector is a ports.Renderer forwarding to the linear renderer or to a
// TUI created on demand. Select must be called before Start.
type Selector struct {
	mu     sync.RWMutex
	linear ports.Renderer
	newTUI func() ports.Renderer
	active ports.Renderer
	mode   detector.OutputMode
}

var _ ports.Renderer = (*Selector)(nil)

// NewSelector creates a Selector that uses linear until told otherwise.
func NewSelector(linear ports.Renderer, newTUI func() ports.Renderer) *Selector {
	return &Selector{
		linear: linear,
		newTUI: newTUI,
		active: linear,
		mode:   detector.ModeLinear,
	}
}

// Select switches to the renderer for mode. ModeAuto is resolved against the
// environment.
func (s *Selector) Select(mode detector.OutputMode) detector.OutputMode {
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	if mode == detector.ModeTUI {
		s.active = s.newTUI()
	} else {
		s.active = s.linear
	}
	return mode
}

// Mode returns the selected mode.
func (s *Selector) Mode() detector.OutputMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Selector) current() ports.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Start implements ports.Renderer.
func (s *Selector) Start(ctx context.Context) error { return s.current().Start(ctx) }

// Stop implements ports.Renderer.
func (s *Selector) Stop() error { return s.current().Stop() }

// Wait implements ports.Renderer.
func (s *Selector) Wait() error { return s.current().Wait() }

// OnPlanEmit implements ports.Renderer.
func (s *Selector) OnPlanEmit(tasks []string) { s.current().OnPlanEmit(tasks) }

// OnTaskStart implements ports.Renderer.
func (s *Selector) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	s.current().OnTaskStart(spanID, parentID, name, startTime)
}

// OnTaskLog implements ports.Renderer.
func (s *Selector) OnTaskLog(spanID string, data []byte) { s.current().OnTaskLog(spanID, data) }

// OnTaskComplete implements ports.Renderer.
func (s *Selector) OnTaskComplete(spanID string, endTime time.Time, err error) {
	s.current().OnTaskComplete(spanID, endTime, err)
}
