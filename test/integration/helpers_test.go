//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/serialcheck/internal/probe"
)

// testEnv holds an isolated results root and one runner per simulated host.
type testEnv struct {
	ResultsDir string
	Linux      *probe.Runner
	Windows    *probe.Runner
	Mac        *probe.Runner
}

// setupTestEnv creates a temp results root and runners that pretend to be
// three different hosts writing into it.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{ResultsDir: t.TempDir()}
	t.Setenv("HOME", t.TempDir())

	env.Linux = newRunner(t, env.ResultsDir, "Linux-6.8.0-45-generic-amd64", "go1.25.7 (gc linux/amd64)")
	env.Windows = newRunner(t, env.ResultsDir, "Windows-10.0.22631-amd64", "go1.25.7 (gc windows/amd64)")
	env.Mac = newRunner(t, env.ResultsDir, "Darwin-23.1.0-arm64", "go1.25.7 (gc darwin/arm64)")
	return env
}

func newRunner(t *testing.T, root, descriptor, runtimeVersion string) *probe.Runner {
	t.Helper()
	r, err := probe.New(probe.Options{
		ResultsDir:     root,
		Descriptor:     descriptor,
		RuntimeVersion: runtimeVersion,
	})
	if err != nil {
		t.Fatalf("probe.New(%s): %v", descriptor, err)
	}
	return r
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s not to exist", path)
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", dir, err)
	}
	return n
}
