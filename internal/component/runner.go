package component

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/render"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/style"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Work is a unit of work run under a spinner. status replaces the line
// shown next to the title; each call repaints once.
type Work func(ctx context.Context, status func(string)) error

// Progress is one report from a ProgressWork.
type Progress struct {
	// Fraction of the work done, clamped to [0, 1].
	Fraction float64
	Message  string
}

// ProgressWork is a unit of work that reports fractional progress.
type ProgressWork func(ctx context.Context, report func(Progress)) error

// BarWidth is the number of cells in a progress bar.
const BarWidth = 24

// RunStep runs work under title. The error from work is returned
// unchanged after the failure line has been rendered.
func RunStep(ctx context.Context, env *Env, title string, work Work) error {
	return run(ctx, env, title, work)
}

// RunProgress runs work under title with a progress bar as its status.
func RunProgress(ctx context.Context, env *Env, title string, work ProgressWork) error {
	return run(ctx, env, title, func(ctx context.Context, status func(string)) error {
		return work(ctx, func(p Progress) {
			status(ProgressBar(p, BarWidth))
		})
	})
}

// ProgressBar draws p as a fixed-width bar with a percentage.
func ProgressBar(p Progress, width int) string {
	f := p.Fraction
	if math.IsNaN(f) {
		f = 0
	}
	f = min(1, max(0, f))
	filled := int(f * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	line := fmt.Sprintf("%s %3d%%", bar, int(f*100))
	if p.Message != "" {
		line += " " + p.Message
	}
	return line
}

func run(ctx context.Context, env *Env, title string, work Work) (err error) {
	theme := env.theme()
	start := env.now()
	defer func() {
		logging.Debug("step finished", "title", title, "elapsed", env.now().Sub(start), "error", err)
	}()

	if !env.Interactive {
		return runAppend(ctx, env, theme, title, start, work)
	}

	release := env.acquireCursor()
	defer release()

	r := render.NewTerminal(env.Streams)
	s := newSpinnerState(r, theme, title, env.spinner())
	s.start()
	defer s.stop()

	err = work(ctx, s.set)
	s.stop()

	elapsed := env.now().Sub(start)
	if err != nil {
		_ = r.Clear()
		_ = r.Render(theme.FailureLine(title, elapsed), terminal.Error)
		_ = r.Commit()
		return err
	}
	_ = r.Render(theme.SuccessLine(title, elapsed), terminal.Primary)
	_ = r.Commit()
	return nil
}

func runAppend(ctx context.Context, env *Env, theme *style.Theme, title string, start time.Time, work Work) error {
	a := render.NewAppend(env.Streams)
	_ = a.Render(theme.StatusLine(logging.GlyphInfo, title), terminal.Primary)

	var mu sync.Mutex
	last := ""
	err := work(ctx, func(status string) {
		mu.Lock()
		defer mu.Unlock()
		if status == "" || status == last {
			return
		}
		last = status
		_ = a.Render(indent(status, "  "), terminal.Primary)
	})

	elapsed := env.now().Sub(start)
	if err != nil {
		_ = a.Render(theme.FailureLine(title, elapsed), terminal.Error)
		return err
	}
	return a.Render(theme.SuccessLine(title, elapsed), terminal.Primary)
}

// spinnerState is the frame shared by the ticker and the unit of work.
// Every repaint happens under mu so a tick and a status change never paint
// stale content over each other.
type spinnerState struct {
	mu      sync.Mutex
	r       render.Renderer
	theme   *style.Theme
	title   string
	frames  spinner.Spinner
	frame   int
	status  string
	stopped bool

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func newSpinnerState(r render.Renderer, theme *style.Theme, title string, frames spinner.Spinner) *spinnerState {
	return &spinnerState{
		r:      r,
		theme:  theme,
		title:  title,
		frames: frames,
		done:   make(chan struct{}),
	}
}

// start paints the first frame and starts the ticker.
func (s *spinnerState) start() {
	s.mu.Lock()
	s.paintLocked()
	s.mu.Unlock()

	if len(s.frames.Frames) < 2 || s.frames.FPS <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.frames.FPS)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// stop halts the ticker and waits for it. Later status updates are dropped.
func (s *spinnerState) stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.done)
	})
	s.wg.Wait()
}

func (s *spinnerState) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.frame++
	s.paintLocked()
}

func (s *spinnerState) set(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.status = status
	s.paintLocked()
}

func (s *spinnerState) paintLocked() {
	if err := s.r.Render(s.viewLocked(), terminal.Primary); err != nil {
		logging.Debug("failed to paint spinner", "error", err)
	}
}

func (s *spinnerState) viewLocked() string {
	glyph := logging.GlyphInfo
	if n := len(s.frames.Frames); n > 0 {
		glyph = s.frames.Frames[s.frame%n]
	}
	line := s.theme.Spinner.Render(glyph) + " " + s.title
	switch {
	case s.status == "":
		return line
	case strings.Contains(s.status, "\n"):
		return line + "\n" + indent(s.status, "  ")
	default:
		return line + " " + s.theme.Dim.Render(s.status)
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
