// Package testutil provides test utilities shared across packages
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// TestEnv holds recording streams and a scratch directory.
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Out     *bytes.Buffer
	Err     *bytes.Buffer
	Streams terminal.Streams
}

// NewTestEnv creates a test environment whose streams record to buffers.
// User-facing log lines are routed to the same buffers and the slog logger
// is silenced until the test ends.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	env := &TestEnv{
		T:      t,
		TmpDir: t.TempDir(),
		Out:    &bytes.Buffer{},
		Err:    &bytes.Buffer{},
	}
	env.Streams = terminal.Streams{Out: env.Out, Err: env.Err}

	origLogger := logging.Logger
	logging.Discard()
	logging.SetUserOutput(env.Out, env.Err)
	t.Cleanup(func() {
		logging.Logger = origLogger
		logging.SetUserOutput(os.Stdout, os.Stderr)
	})

	return env
}

// WriteFile writes content under the scratch directory and returns its
// path. Parent directories are created.
func (e *TestEnv) WriteFile(name, content string) string {
	e.T.Helper()

	path := filepath.Join(e.TmpDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// CopyFixture copies a fixture into the scratch directory and returns its
// path.
func (e *TestEnv) CopyFixture(name string) string {
	e.T.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return e.WriteFile(name, string(data))
}
