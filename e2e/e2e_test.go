//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// e2eVersion is stamped into the binary under test so scripts can tell it
// apart from a composite found on the host PATH.
const e2eVersion = "e2e"

var compositeBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "composite-e2e-*")
	if err != nil {
		panic(err)
	}

	compositeBinary = filepath.Join(tmpDir, "composite")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build",
		"-ldflags", "-X go.trai.ch/composite/internal/build.Version="+e2eVersion,
		"-o", compositeBinary, "./cmd/composite")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build composite binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	// Host settings must not leak into the builds under test.
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "COMPOSITE_") {
			env.Setenv(name, "")
		}
	}

	binDir := filepath.Dir(compositeBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
