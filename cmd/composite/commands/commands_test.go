package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/cmd/composite/commands"
	"go.trai.ch/composite/internal/app"
	"go.trai.ch/composite/internal/build"
)

type mockApp struct {
	runFunc    func(ctx context.Context, targets []string, opts app.RunOptions) error
	buildsFunc func(ctx context.Context, w io.Writer, opts app.RunOptions) error
}

func (m *mockApp) Run(ctx context.Context, targets []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, targets, opts)
	}
	return nil
}

func (m *mockApp) Builds(ctx context.Context, w io.Writer, opts app.RunOptions) error {
	if m.buildsFunc != nil {
		return m.buildsFunc(ctx, w, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTargets []string

		mock := &mockApp{
			runFunc: func(_ context.Context, targets []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedTargets = targets
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "build", ":app:test", "--dir", "/ws/app", "--workers", "3"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{":build", ":app:test"}, capturedTargets)
		assert.Equal(t, "/ws/app", capturedOpts.Dir)
		require.NotNil(t, capturedOpts.Flags)

		workers, err := capturedOpts.Flags.GetInt("workers")
		require.NoError(t, err)
		assert.Equal(t, 3, workers)
		assert.True(t, capturedOpts.Flags.Changed("workers"))
		assert.False(t, capturedOpts.Flags.Changed("log-json"))
	})

	t.Run("defaults dir to working directory", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, ".", capturedOpts.Dir)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "target"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no targets provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"run"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Builds(t *testing.T) {
	var capturedOpts app.RunOptions
	mock := &mockApp{
		buildsFunc: func(_ context.Context, w io.Writer, opts app.RunOptions) error {
			capturedOpts = opts
			_, err := io.WriteString(w, "listing\n")
			return err
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"builds", "-C", "/ws/app"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "listing\n", buf.String())
	assert.Equal(t, "/ws/app", capturedOpts.Dir)
}

func TestCommands_BuildsRejectsArgs(t *testing.T) {
	cli := commands.New(&mockApp{})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"builds", "extra"})

	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
	assert.Contains(t, buf.String(), build.Commit)
}

func TestCommands_VersionShort(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version", "--short"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, build.Version+"\n", buf.String())
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "composite version "+build.Version)
}
