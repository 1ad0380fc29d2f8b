package component

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/render"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/style"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Env is everything a widget needs from its surroundings. Only Streams is
// required; the zero values of the rest give a plain, non-interactive
// environment.
type Env struct {
	Streams     terminal.Streams
	Interactive bool

	// Theme styles status lines and selections. Nil means plain.
	Theme *style.Theme
	// Driver owns raw mode and the cursor. Nil skips both.
	Driver *terminal.Driver
	// Input overrides Driver as the key source.
	Input keys.Source
	// Config supplies defaults. Nil means config.Default().
	Config *config.Config

	// Width overrides the terminal width.
	Width int
	// Exit replaces os.Exit for the exit interrupt policy.
	Exit func(int)
	// Now replaces time.Now for elapsed times.
	Now func() time.Time
}

func (e *Env) config() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

func (e *Env) theme() *style.Theme {
	if e.Theme == nil {
		return style.Plain()
	}
	return e.Theme
}

func (e *Env) width() int {
	if e.Width > 0 {
		return e.Width
	}
	if e.Driver != nil {
		return e.Driver.Width()
	}
	return terminal.DefaultWidth
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) exit() func(int) {
	if e.Exit == nil {
		return os.Exit
	}
	return e.Exit
}

func (e *Env) source() keys.Source {
	if e.Input != nil {
		return e.Input
	}
	if e.Driver != nil {
		return e.Driver
	}
	return nil
}

func (e *Env) tableStyle(override *table.Style) table.Style {
	if override != nil {
		return *override
	}
	return e.config().TableStyle()
}

func (e *Env) viewportSize(n int) int {
	if n > 0 {
		return n
	}
	return e.config().Table.ViewportSize
}

func (e *Env) spinner() spinner.Spinner {
	return e.config().SpinnerFrames()
}

// acquireCursor hides the cursor for output-only widgets. A failure is
// logged and the widget carries on with a visible cursor.
func (e *Env) acquireCursor() func() error {
	if e.Driver == nil {
		return func() error { return nil }
	}
	release, err := e.Driver.AcquireCursor()
	if err != nil {
		logging.Debug("failed to hide cursor", "error", err)
		return func() error { return nil }
	}
	return release
}

// session is one run of an interactive widget: the terminal in raw mode, a
// renderer, and the key loop.
type session struct {
	env     *Env
	src     keys.Source
	r       *render.Terminal
	release func() error
}

// open checks interactivity and takes the terminal. Callers validate their
// data first so nothing is touched on structural errors.
func (e *Env) open(widget string) (*session, error) {
	if !e.Interactive {
		return nil, errors.NonInteractiveTerminal(widget)
	}
	src := e.source()
	if src == nil {
		return nil, errors.NonInteractiveTerminal(widget)
	}

	release := func() error { return nil }
	if e.Driver != nil {
		rel, err := e.Driver.Acquire()
		if err != nil {
			return nil, fmt.Errorf("failed to prepare terminal for %s: %w", widget, err)
		}
		release = rel
	}

	return &session{
		env:     e,
		src:     src,
		r:       render.NewTerminal(e.Streams),
		release: release,
	}, nil
}

// restore leaves the current frame on screen and gives the terminal back.
// It runs on interrupt, before the process may exit.
func (s *session) restore() error {
	_ = s.r.Commit()
	return s.release()
}

// close gives the terminal back. Safe to call more than once.
func (s *session) close() {
	if err := s.release(); err != nil {
		logging.Warn("failed to restore terminal", "error", err)
	}
}

// listen feeds keys to h until h returns false, done closes or ctx ends.
// An interrupt becomes UserCancelled; a cancelled ctx is returned as is.
func (s *session) listen(ctx context.Context, done <-chan struct{}, h keys.Handler) error {
	stop, cancel := mergeStop(ctx, done)
	defer cancel()

	dec := keys.NewDecoder(s.src,
		keys.WithStop(stop),
		keys.WithInterruptHandler(s.env.config().InterruptPolicy(), s.restore),
		keys.WithExit(s.env.exit()),
	)
	if err := dec.Listen(h); err != nil {
		if errors.Is(err, keys.ErrInterrupted) {
			return errors.UserCancelled()
		}
		return err
	}
	return ctx.Err()
}

// mergeStop closes the returned channel when ctx ends or done closes. The
// cancel func releases the watcher goroutine.
func mergeStop(ctx context.Context, done <-chan struct{}) (<-chan struct{}, func()) {
	stop := make(chan struct{})
	quit := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		case <-quit:
			return
		}
		close(stop)
	}()
	return stop, func() { close(quit) }
}
