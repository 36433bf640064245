package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/adapters/shell"
	"go.trai.ch/composite/internal/core/domain"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{
		Name:    domain.NewInternedString("test-task"),
		Command: []string{"sh", "-c", "echo line1; echo line2"},
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, t.TempDir(), nil, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	require.Contains(t, output, "line1")
	require.Contains(t, output, "line2")
}

func TestExecutor_Execute_RunsInDir(t *testing.T) {
	executor := shell.NewExecutor()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("here"), 0o600))

	task := &domain.Task{
		Name:    domain.NewInternedString("cat"),
		Command: []string{"cat", "marker.txt"},
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, dir, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "here")
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{
		Name:        domain.NewInternedString("test-env-task"),
		Command:     []string{"sh", "-c", "echo $MY_TEST_VAR $COMPOSITE_BUILD"},
		Environment: map[string]string{"MY_TEST_VAR": "test-value-123"},
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, t.TempDir(), []string{"COMPOSITE_BUILD=:lib"}, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	require.Contains(t, output, "test-value-123")
	require.Contains(t, output, ":lib")
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{
		Name:    domain.NewInternedString("test-invalid"),
		Command: []string{"nonexistent-command-xyz123"},
	}

	err := executor.Execute(context.Background(), task, t.TempDir(), nil, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{
		Name:    domain.NewInternedString("test-fail"),
		Command: []string{"sh", "-c", "exit 42"},
	}

	err := executor.Execute(context.Background(), task, t.TempDir(), nil, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{Name: domain.NewInternedString("test-empty")}

	err := executor.Execute(context.Background(), task, t.TempDir(), nil, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_Canceled(t *testing.T) {
	executor := shell.NewExecutor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := &domain.Task{
		Name:    domain.NewInternedString("sleep"),
		Command: []string{"sleep", "10"},
	}

	err := executor.Execute(ctx, task, t.TempDir(), nil, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestExecutor_Execute_PreservesANSI(t *testing.T) {
	executor := shell.NewExecutor()

	ansiRed := "\033[31m"
	msg := "Hello Red World"
	task := &domain.Task{
		Name:    domain.NewInternedString("test-ansi"),
		Command: []string{"sh", "-c", "printf '" + ansiRed + msg + "\033[0m'"},
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, t.TempDir(), nil, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	assert.True(t, strings.Contains(output, ansiRed), "expected ANSI red code in %q", output)
	assert.Contains(t, output, msg)
}

func TestExecutor_Execute_ExtraPATH(t *testing.T) {
	executor := shell.NewExecutor()

	binDir := t.TempDir()
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "my-build-tool"), []byte("#!/bin/sh\necho success\n"), 0o700))

	task := &domain.Task{
		Name:    domain.NewInternedString("tool"),
		Command: []string{"my-build-tool"},
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, binDir, []string{"PATH=" + binDir}, &stdout, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "success")
}
