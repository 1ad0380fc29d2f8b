package keys

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// EscapeTimeout is how long a lone ESC waits for the rest of a sequence.
const EscapeTimeout = 50 * time.Millisecond

// ErrInterrupted is returned by Listen under PolicyContinue. It carries the
// user-cancelled exit code, so errors.IsUserCancelled matches it.
var ErrInterrupted = errors.New(errors.ExitUserCancelled, "interrupted")

// Source is a blocking byte source with a timed variant.
// *terminal.Driver implements it.
type Source interface {
	ReadByte(stop <-chan struct{}) (byte, error)
	ReadByteTimeout(timeout time.Duration) (byte, bool, error)
}

// InterruptPolicy decides what happens after Ctrl+C restored the terminal.
type InterruptPolicy int

const (
	// PolicyExit terminates the process with status 130.
	PolicyExit InterruptPolicy = iota
	// PolicyContinue ends Listen with ErrInterrupted.
	PolicyContinue
	// PolicyIgnore ends Listen silently with a nil error.
	PolicyIgnore
)

func (p InterruptPolicy) String() string {
	switch p {
	case PolicyExit:
		return "exit"
	case PolicyContinue:
		return "continue"
	case PolicyIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "exit", "continue" or "ignore".
func ParsePolicy(s string) (InterruptPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exit", "":
		return PolicyExit, nil
	case "continue":
		return PolicyContinue, nil
	case "ignore":
		return PolicyIgnore, nil
	default:
		return PolicyExit, fmt.Errorf("unknown interrupt policy %q (want exit, continue or ignore)", s)
	}
}

// Handler receives each decoded stroke. Returning false ends Listen.
type Handler func(KeyStroke) bool

// Decoder turns a Source into key strokes.
type Decoder struct {
	src        Source
	stop       <-chan struct{}
	policy     InterruptPolicy
	restore    func() error
	exit       func(int)
	escTimeout time.Duration
	p          parser
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithStop ends Listen once stop is closed. The channel is checked between
// every decoded event and while waiting for input.
func WithStop(stop <-chan struct{}) Option {
	return func(d *Decoder) {
		d.stop = stop
	}
}

// WithInterruptHandler sets the policy applied to Ctrl+C and the function
// that restores the terminal first.
func WithInterruptHandler(policy InterruptPolicy, restore func() error) Option {
	return func(d *Decoder) {
		d.policy = policy
		d.restore = restore
	}
}

// WithExit replaces os.Exit for PolicyExit.
func WithExit(exit func(int)) Option {
	return func(d *Decoder) {
		d.exit = exit
	}
}

// WithEscapeTimeout overrides EscapeTimeout.
func WithEscapeTimeout(timeout time.Duration) Option {
	return func(d *Decoder) {
		d.escTimeout = timeout
	}
}

// NewDecoder creates a decoder reading from src.
func NewDecoder(src Source, opts ...Option) *Decoder {
	d := &Decoder{
		src:        src,
		policy:     PolicyExit,
		exit:       os.Exit,
		escTimeout: EscapeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Listen decodes input until the handler returns false, the stop channel
// closes, the source fails, or Ctrl+C arrives.
func (d *Decoder) Listen(h Handler) error {
	d.p.reset()
	var out []KeyStroke

	for {
		if d.stopped() {
			return nil
		}

		b, err := d.src.ReadByte(d.stop)
		if err != nil {
			if errors.Is(err, terminal.ErrStopped) {
				return nil
			}
			return fmt.Errorf("failed to read key: %w", err)
		}
		if b == terminal.InterruptByte {
			return d.interrupt()
		}

		out = d.p.push(out[:0], b)

		// Finish any escape sequence with timed reads so a lone ESC, or a
		// partial one such as Alt+[, never waits for the next key.
		for d.p.pendingSequence() {
			next, ok, err := d.src.ReadByteTimeout(d.escTimeout)
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			if !ok {
				out = d.p.flush(out)
				break
			}
			if next == terminal.InterruptByte {
				return d.interrupt()
			}
			out = d.p.push(out, next)
		}

		for _, k := range out {
			if !h(k) {
				return nil
			}
			if d.stopped() {
				return nil
			}
		}
	}
}

func (d *Decoder) stopped() bool {
	if d.stop == nil {
		return false
	}
	select {
	case <-d.stop:
		return true
	default:
		return false
	}
}

func (d *Decoder) interrupt() error {
	d.p.reset()
	if d.restore != nil {
		if err := d.restore(); err != nil {
			logging.Warn("failed to restore terminal after interrupt", "error", err)
		}
	}
	logging.Debug("interrupt received", "policy", d.policy)

	switch d.policy {
	case PolicyContinue:
		return ErrInterrupted
	case PolicyIgnore:
		return nil
	default:
		d.exit(errors.ExitUserCancelled)
		return ErrInterrupted
	}
}

// Decode converts a complete byte sequence into strokes the way Listen
// would, treating end of input as the escape timeout for a partial
// sequence. Decoding stops at the
// interrupt byte.
func Decode(b []byte) []KeyStroke {
	var p parser
	var out []KeyStroke
	for _, c := range b {
		if c == terminal.InterruptByte {
			return out
		}
		out = p.push(out, c)
	}
	return p.flush(out)
}
