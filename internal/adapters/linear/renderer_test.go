package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)
	require.NoError(t, r.Start(t.Context()))
	return r, &stdout, &stderr
}

func TestRenderer_TaskLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer(t)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	r.OnPlanEmit([]string{":build", ":lib:jar"})
	r.OnTaskStart("span1", "", ":lib:jar", start)
	r.OnTaskLog("span1", []byte("first line\nsecond"))
	r.OnTaskLog("span1", []byte(" line\n"))
	r.OnTaskComplete("span1", start.Add(1500*time.Millisecond), nil)

	r.OnTaskStart("span2", "", ":build", start)
	r.OnTaskLog("span2", []byte("boom\r\n"))
	r.OnTaskComplete("span2", start.Add(20*time.Millisecond), errors.New("task execution failed"))

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	assert.Equal(t, "[:lib:jar] first line\n[:lib:jar] second line\n[:build] boom\n", stdout.String())
	goldie.New(t).Assert(t, "renderer_lifecycle", stderr.Bytes())
}

func TestRenderer_PartialLineOnComplete(t *testing.T) {
	r, stdout, _ := newRenderer(t)
	start := time.Now()

	r.OnTaskStart("span1", "", ":task", start)
	r.OnTaskLog("span1", []byte("partial"))
	assert.Empty(t, stdout.String())

	r.OnTaskComplete("span1", start, nil)
	assert.Equal(t, "[:task] partial\n", stdout.String())
}

func TestRenderer_StopFlushesRunningTasks(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnTaskStart("span1", "", ":task", time.Now())
	r.OnTaskLog("span1", []byte("unterminated"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[:task] unterminated\n", stdout.String())
}

func TestRenderer_UnknownSpan(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	r.OnTaskLog("missing", []byte("ignored\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_SkipsEmptyLines(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnTaskStart("span1", "", ":task", time.Now())
	r.OnTaskLog("span1", []byte("\n\nvalue\n"))

	assert.Equal(t, "[:task] value\n", stdout.String())
}
