package component

import (
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/testutil"
)

const (
	keyUp     = "\x1b[A"
	keyDown   = "\x1b[B"
	keyRight  = "\x1b[C"
	keyLeft   = "\x1b[D"
	keyEnd    = "\x1b[F"
	keyPgDown = "\x1b[6~"
	keyReturn = "\r"
	keyEscape = "\x1b"
	keyCtrlC  = "\x03"
)

type harness struct {
	env    *Env
	out    *testutil.Screen
	errOut *testutil.Screen
	keys   *testutil.Script
}

// newHarness builds an interactive environment reading bursts. The script
// reports EOF once exhausted so a widget that never finishes fails fast.
func newHarness(t *testing.T, bursts ...string) *harness {
	t.Helper()
	testutil.NewTestEnv(t)

	script := testutil.NewScript(bursts...)
	script.EOF = true

	cfg := config.Default()
	cfg.Interrupt = "continue"

	h := &harness{
		out:    testutil.NewScreen(),
		errOut: testutil.NewScreen(),
		keys:   script,
	}
	h.env = &Env{
		Streams:     terminal.Streams{Out: h.out, Err: h.errOut},
		Interactive: true,
		Input:       script,
		Config:      cfg,
		Width:       60,
		Now:         func() time.Time { return time.Unix(0, 0) },
	}
	return h
}

// waitFor polls the screen until it contains want.
func waitFor(t *testing.T, s *testutil.Screen, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(s.Text(), want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("screen never showed %q; got:\n%s", want, s.Text())
}
