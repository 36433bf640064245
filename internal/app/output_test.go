package app_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/adapters/config"
	"go.trai.ch/composite/internal/adapters/lifecycle"
	"go.trai.ch/composite/internal/adapters/linear"
	"go.trai.ch/composite/internal/adapters/logger"
	"go.trai.ch/composite/internal/adapters/options"
	"go.trai.ch/composite/internal/adapters/renderer"
	"go.trai.ch/composite/internal/adapters/shell"
	"go.trai.ch/composite/internal/adapters/telemetry"
	"go.trai.ch/composite/internal/adapters/tui"
	"go.trai.ch/composite/internal/app"
	"go.trai.ch/composite/internal/core/ports"
)

func newSelectingApp(t *testing.T, stdout, logs *bytes.Buffer, tuiCreated *bool) *app.App {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	log := logger.New()
	log.SetOutput(logs)
	sel := renderer.NewSelector(linear.NewRenderer(stdout, io.Discard), func() ports.Renderer {
		*tuiCreated = true
		return tui.NewRenderer(
			tui.NewModel(io.Discard),
			tea.WithInput(strings.NewReader("")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	})
	tracer := telemetry.NewOTelTracer("test", sel)
	factory := lifecycle.NewFactory(config.NewLoader(log), shell.NewExecutor(), log, tracer)
	return app.New(factory, log, tracer, sel)
}

func outputFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	options.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestApp_Run_LinearOutput(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"build.yaml": "tasks:\n  hello:\n    cmd: [sh, -c, \"echo hi\"]\n",
	})
	var stdout, logs bytes.Buffer
	tuiCreated := false
	a := newSelectingApp(t, &stdout, &logs, &tuiCreated)

	err := a.Run(t.Context(), []string{":hello"}, app.RunOptions{Dir: ws, Flags: outputFlags(t, "--output", "linear")})
	require.NoError(t, err, logs.String())

	assert.False(t, tuiCreated)
	assert.Contains(t, stdout.String(), "[:hello] hi")
}

func TestApp_Run_TUIOutput(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"build.yaml": "tasks:\n  hello:\n    cmd: [sh, -c, \"echo hi\"]\n",
	})
	var stdout, logs bytes.Buffer
	tuiCreated := false
	a := newSelectingApp(t, &stdout, &logs, &tuiCreated)

	err := a.Run(t.Context(), []string{":hello"}, app.RunOptions{Dir: ws, Flags: outputFlags(t, "--output", "tui")})
	require.NoError(t, err, logs.String())

	assert.True(t, tuiCreated)
	assert.Empty(t, stdout.String(), "linear renderer must stay idle")
	assert.Contains(t, logs.String(), "finished", "held logs are written once the run is over")
}

func TestApp_Run_TUIOutputFailure(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"build.yaml": "tasks:\n  broken:\n    cmd: [sh, -c, \"exit 2\"]\n",
	})
	var stdout, logs bytes.Buffer
	tuiCreated := false
	a := newSelectingApp(t, &stdout, &logs, &tuiCreated)

	err := a.Run(t.Context(), []string{":broken"}, app.RunOptions{Dir: ws, Flags: outputFlags(t, "--output", "tui")})
	require.Error(t, err)

	assert.Contains(t, logs.String(), "task execution failed")
	assert.Contains(t, logs.String(), "task: :broken")
}
