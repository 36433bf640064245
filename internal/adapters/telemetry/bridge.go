package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/composite/internal/core/ports"
)

// Bridge is an sdktrace.SpanProcessor that reports task spans to a Renderer.
// Spans without the task attribute are not reported.
type Bridge struct {
	renderer ports.Renderer
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a Bridge feeding renderer.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports the start of a task span.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if !b.reports(s) {
		return
	}

	var parentID string
	if p := trace.SpanFromContext(parent).SpanContext(); p.IsValid() {
		parentID = p.SpanID().String()
	}
	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd reports the end of a task span. An error status becomes the task error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !b.reports(s) {
		return
	}

	var err error
	if status := s.Status(); status.Code == codes.Error {
		desc := status.Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
	}
	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.EndTime(), err)
}

func (b *Bridge) reports(s sdktrace.ReadOnlySpan) bool {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return false
	}
	for _, attr := range s.Attributes() {
		if string(attr.Key) == ports.AttrTask {
			return true
		}
	}
	return false
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error { return nil }

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error { return nil }
