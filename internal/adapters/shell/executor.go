// Package shell provides a shell-based executor for running tasks.
package shell

import (
	"context"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec behind a pseudo-terminal,
// so tools keep their interactive formatting. The terminal merges stderr into
// stdout.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ioDone <-chan struct{}
}

// Wait waits for the command to exit and for its output to be drained.
func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()
	<-p.ioDone
	return err
}

func start(ctx context.Context, task *domain.Task, dir string, env []string, stdout io.Writer) (*ptyProcess, error) {
	name := task.Command[0]
	args := task.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env, task.Environment)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	cmd.Args[0] = name
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = cmdEnv

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start pty"), "command", name)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Reading the master fails with EIO once the child exits; that ends the copy.
		_, _ = io.Copy(stdout, ptmx)
	}()

	return &ptyProcess{cmd: cmd, ioDone: ioDone}, nil
}

// Execute runs the task's command in dir and waits for it to complete.
// A task without a command succeeds immediately.
func (e *Executor) Execute(
	ctx context.Context,
	task *domain.Task,
	dir string,
	env []string,
	stdout, _ io.Writer,
) error {
	if len(task.Command) == 0 {
		return nil
	}

	proc, err := start(ctx, task, dir, env, stdout)
	if err != nil {
		return err
	}

	if err := proc.Wait(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// allowListedEnvVars are the system environment variables a task inherits.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
}

// resolveEnvironment merges the allow-listed system environment, the extra
// environment (its PATH is prepended) and the task's own variables, in
// increasing priority.
func resolveEnvironment(sysEnv, extraEnv []string, taskEnv map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)
	applyExtraEnv(envMap, extraEnv)
	maps.Copy(envMap, taskEnv)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	return envMap
}

func applyExtraEnv(envMap map[string]string, extraEnv []string) {
	for _, entry := range extraEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if sysPath := envMap["PATH"]; k == "PATH" && sysPath != "" {
			v = v + string(os.PathListSeparator) + sysPath
		}
		envMap[k] = v
	}
}

// lookPath searches for an executable in the PATH of env rather than of the
// current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
