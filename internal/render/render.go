package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Renderer paints one frame of content to a pipeline.
type Renderer interface {
	Render(content string, p terminal.Pipeline) error
}

// Frame is the renderer's memory of what is on screen.
type Frame struct {
	Lines        int
	Pipeline     terminal.Pipeline
	CursorHidden bool
}

// Cursor controls cursor visibility. *terminal.Driver implements it.
type Cursor interface {
	HideCursor() error
	ShowCursor() error
}

// LineCount is the number of terminal lines content occupies.
func LineCount(content string) int {
	return strings.Count(content, "\n") + 1
}

// eraseSequence moves from the last line of an n-line frame back to its
// first column and clears everything below.
func eraseSequence(n int) string {
	if n <= 0 {
		return ""
	}
	if n == 1 {
		return "\r\x1b[J"
	}
	return fmt.Sprintf("\x1b[%dA\r\x1b[J", n-1)
}

type flusher interface {
	Flush() error
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Terminal repaints frames in place on an interactive terminal.
type Terminal struct {
	mu      sync.Mutex
	streams terminal.Streams
	cursor  Cursor
	frame   Frame
}

// Option configures a Terminal renderer.
type Option func(*Terminal)

// WithCursor routes HideCursor and ShowCursor through c.
func WithCursor(c Cursor) Option {
	return func(r *Terminal) {
		r.cursor = c
	}
}

// NewTerminal creates an in-place renderer over streams.
func NewTerminal(streams terminal.Streams, opts ...Option) *Terminal {
	r := &Terminal{streams: streams}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render erases the previous frame and prints content. The lock is held for
// the whole paint so concurrent callers never interleave escapes and text.
func (r *Terminal) Render(content string, p terminal.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	if r.frame.Lines > 0 && r.frame.Pipeline == p {
		b.WriteString(eraseSequence(r.frame.Lines))
	}
	b.WriteString(content)

	if err := write(r.streams.Writer(p), b.String()); err != nil {
		return err
	}
	r.frame.Lines = LineCount(content)
	r.frame.Pipeline = p
	return nil
}

// Commit ends the current frame with a newline so it stays on screen, and
// forgets it. The next Render starts a fresh block below.
func (r *Terminal) Commit() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frame.Lines == 0 {
		return nil
	}
	err := write(r.streams.Writer(r.frame.Pipeline), "\n")
	r.frame.Lines = 0
	return err
}

// Clear erases the current frame and forgets it.
func (r *Terminal) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frame.Lines == 0 {
		return nil
	}
	err := write(r.streams.Writer(r.frame.Pipeline), eraseSequence(r.frame.Lines))
	r.frame.Lines = 0
	return err
}

// Reset forgets the previous frame without touching the screen.
func (r *Terminal) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame.Lines = 0
}

// Frame returns a copy of the current frame state.
func (r *Terminal) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// HideCursor hides the cursor and records it in the frame.
func (r *Terminal) HideCursor() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor != nil {
		if err := r.cursor.HideCursor(); err != nil {
			return err
		}
	}
	r.frame.CursorHidden = true
	return nil
}

// ShowCursor shows the cursor and records it in the frame.
func (r *Terminal) ShowCursor() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor != nil {
		if err := r.cursor.ShowCursor(); err != nil {
			return err
		}
	}
	r.frame.CursorHidden = false
	return nil
}

// Append writes every frame as plain lines. It is used when output is not
// an interactive terminal.
type Append struct {
	mu      sync.Mutex
	streams terminal.Streams
}

// NewAppend creates an append-only renderer over streams.
func NewAppend(streams terminal.Streams) *Append {
	return &Append{streams: streams}
}

// Render writes content followed by a newline.
func (r *Append) Render(content string, p terminal.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return write(r.streams.Writer(p), content+"\n")
}

// New picks the in-place renderer for interactive output and the append
// renderer otherwise.
func New(streams terminal.Streams, interactive bool, opts ...Option) Renderer {
	if interactive {
		return NewTerminal(streams, opts...)
	}
	return NewAppend(streams)
}
