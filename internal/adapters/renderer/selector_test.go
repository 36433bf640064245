package renderer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/adapters/detector"
	"go.trai.ch/composite/internal/adapters/renderer"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestSelector_DefaultsToLinear(t *testing.T) {
	ctrl := gomock.NewController(t)
	linear := mocks.NewMockRenderer(ctrl)
	s := renderer.NewSelector(linear, func() ports.Renderer {
		t.Fatal("TUI must not be created")
		return nil
	})

	linear.EXPECT().OnPlanEmit([]string{":build"})
	s.OnPlanEmit([]string{":build"})
	assert.Equal(t, detector.ModeLinear, s.Mode())
}

func TestSelector_SelectTUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	linear := mocks.NewMockRenderer(ctrl)
	tui := mocks.NewMockRenderer(ctrl)
	created := 0
	s := renderer.NewSelector(linear, func() ports.Renderer {
		created++
		return tui
	})

	assert.Equal(t, detector.ModeTUI, s.Select(detector.ModeTUI))
	assert.Equal(t, 1, created)

	ctx := context.Background()
	now := time.Now()
	failure := errors.New("boom")
	gomock.InOrder(
		tui.EXPECT().Start(ctx).Return(nil),
		tui.EXPECT().OnPlanEmit([]string{":build"}),
		tui.EXPECT().OnTaskStart("s1", "p1", ":build", now),
		tui.EXPECT().OnTaskLog("s1", []byte("out")),
		tui.EXPECT().OnTaskComplete("s1", now, failure),
		tui.EXPECT().Stop().Return(nil),
		tui.EXPECT().Wait().Return(nil),
	)

	require.NoError(t, s.Start(ctx))
	s.OnPlanEmit([]string{":build"})
	s.OnTaskStart("s1", "p1", ":build", now)
	s.OnTaskLog("s1", []byte("out"))
	s.OnTaskComplete("s1", now, failure)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Wait())
}

func TestSelector_SelectLinearAfterTUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	linear := mocks.NewMockRenderer(ctrl)
	tui := mocks.NewMockRenderer(ctrl)
	s := renderer.NewSelector(linear, func() ports.Renderer { return tui })

	s.Select(detector.ModeTUI)
	s.Select(detector.ModeLinear)

	linear.EXPECT().Stop().Return(nil)
	require.NoError(t, s.Stop())
	assert.Equal(t, detector.ModeLinear, s.Mode())
}

func TestSelector_AutoResolvesAgainstEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	ctrl := gomock.NewController(t)
	s := renderer.NewSelector(mocks.NewMockRenderer(ctrl), func() ports.Renderer {
		t.Fatal("TUI must not be created in CI")
		return nil
	})

	assert.Equal(t, detector.ModeLinear, s.Select(detector.ModeAuto))
}
