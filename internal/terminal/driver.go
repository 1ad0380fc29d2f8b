package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the terminal size cannot be queried.
	DefaultWidth = 80
	// DefaultHeight is used when the terminal size cannot be queried.
	DefaultHeight = 24

	// InterruptByte is the character produced by Ctrl+C when ISIG is off,
	// and what ReadByte reports for a pending interrupt signal.
	InterruptByte byte = 0x03

	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
)

// ErrStopped is returned by ReadByte when its stop channel closes.
var ErrStopped = errors.New("terminal: read stopped")

// Driver owns the terminal mode and cursor state for one input file and one
// output writer.
type Driver struct {
	in  *os.File
	out io.Writer
	fd  int

	mu           sync.Mutex
	saved        *modeState
	cursorHidden bool

	interrupts chan struct{}
	readers    atomic.Int32
	rs         readerState
}

// NewDriver creates a driver reading from in and writing cursor escapes to
// out. in may be nil for output-only widgets.
func NewDriver(in *os.File, out io.Writer) *Driver {
	fd := -1
	if in != nil {
		fd = int(in.Fd())
	}
	if out == nil {
		out = io.Discard
	}
	return &Driver{
		in:         in,
		out:        out,
		fd:         fd,
		interrupts: make(chan struct{}, 1),
	}
}

// EnableRawMode clears echo and canonical input, saving the exact prior
// flags for RestoreMode.
func (d *Driver) EnableRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.saved != nil {
		return nil
	}
	if d.fd < 0 || !term.IsTerminal(d.fd) {
		return fmt.Errorf("failed to enable raw mode: input is not a terminal")
	}

	st, err := enterRaw(d.fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	d.saved = st
	return nil
}

// RestoreMode puts back the flags saved by EnableRawMode.
func (d *Driver) RestoreMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.restoreModeLocked()
}

func (d *Driver) restoreModeLocked() error {
	if d.saved == nil {
		return nil
	}
	if err := restoreMode(d.fd, d.saved); err != nil {
		return fmt.Errorf("failed to restore terminal mode: %w", err)
	}
	d.saved = nil
	return nil
}

// RawMode reports whether raw mode is currently enabled.
func (d *Driver) RawMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved != nil
}

// HideCursor emits and flushes the hide-cursor escape.
func (d *Driver) HideCursor() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cursorHidden {
		return nil
	}
	if err := writeFlush(d.out, seqHideCursor); err != nil {
		return err
	}
	d.cursorHidden = true
	return nil
}

// ShowCursor emits and flushes the show-cursor escape.
func (d *Driver) ShowCursor() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.showCursorLocked()
}

func (d *Driver) showCursorLocked() error {
	if !d.cursorHidden {
		return nil
	}
	if err := writeFlush(d.out, seqShowCursor); err != nil {
		return err
	}
	d.cursorHidden = false
	return nil
}

// CursorHidden reports the current cursor visibility.
func (d *Driver) CursorHidden() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursorHidden
}

// Restore shows the cursor and restores the saved input mode. It is safe to
// call any number of times, including from the signal handler.
func (d *Driver) Restore() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	if err := d.showCursorLocked(); err != nil {
		errs = append(errs, err)
	}
	if err := d.restoreModeLocked(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Acquire enters raw mode and hides the cursor for an interactive widget.
// The returned release restores both exactly once; callers defer it so every
// exit path, including panics, puts the terminal back.
func (d *Driver) Acquire() (func() error, error) {
	if err := d.EnableRawMode(); err != nil {
		return nil, err
	}
	if err := d.HideCursor(); err != nil {
		_ = d.RestoreMode()
		return nil, err
	}
	return d.register(), nil
}

// AcquireCursor hides the cursor for an output-only widget such as a
// spinner. The returned release shows it again exactly once.
func (d *Driver) AcquireCursor() (func() error, error) {
	if err := d.HideCursor(); err != nil {
		return nil, err
	}
	return d.register(), nil
}

func (d *Driver) register() func() error {
	setActive(d)
	var once sync.Once
	var err error
	return func() error {
		once.Do(func() {
			clearActive(d)
			err = d.Restore()
		})
		return err
	}
}

// Interrupt queues an interrupt that the next ReadByte reports as
// InterruptByte.
func (d *Driver) Interrupt() {
	select {
	case d.interrupts <- struct{}{}:
	default:
	}
}

// Reading reports whether a goroutine is currently blocked in ReadByte.
func (d *Driver) Reading() bool {
	return d.readers.Load() > 0
}

// Size returns the terminal dimensions of the output, or of the input when
// the output is not a file. ok is false when neither can be queried.
func (d *Driver) Size() (cols, rows int, ok bool) {
	if fd, has := fdOf(d.out); has {
		if w, h, err := term.GetSize(int(fd)); err == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}
	if d.fd >= 0 {
		if w, h, err := term.GetSize(d.fd); err == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}
	return 0, 0, false
}

// Width returns the terminal width, falling back to DefaultWidth.
func (d *Driver) Width() int {
	cols, _, ok := d.Size()
	if !ok {
		return DefaultWidth
	}
	return cols
}

// Height returns the terminal height, falling back to DefaultHeight.
func (d *Driver) Height() int {
	_, rows, ok := d.Size()
	if !ok {
		return DefaultHeight
	}
	return rows
}
