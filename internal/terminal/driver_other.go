//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"io"
	"sync"
	"time"

	"golang.org/x/term"
)

type modeState struct {
	state *term.State
}

// enterRaw falls back to x/term, which saves the full prior state.
func enterRaw(fd int) (*modeState, error) {
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &modeState{state: st}, nil
}

func restoreMode(fd int, s *modeState) error {
	return term.Restore(fd, s.state)
}

type readResult struct {
	b   byte
	err error
}

// readerState feeds bytes from a goroutine, since these platforms have no
// poll on console handles.
type readerState struct {
	once sync.Once
	ch   chan readResult
}

func (d *Driver) startReader() {
	d.rs.once.Do(func() {
		d.rs.ch = make(chan readResult, 16)
		go func() {
			var buf [1]byte
			for {
				if d.in == nil {
					d.rs.ch <- readResult{err: io.EOF}
					return
				}
				n, err := d.in.Read(buf[:])
				if err != nil {
					d.rs.ch <- readResult{err: err}
					return
				}
				if n == 1 {
					d.rs.ch <- readResult{b: buf[0]}
				}
			}
		}()
	})
}

// ReadByte blocks until a byte arrives, an interrupt is pending, or stop is
// closed (ErrStopped).
func (d *Driver) ReadByte(stop <-chan struct{}) (byte, error) {
	d.readers.Add(1)
	defer d.readers.Add(-1)
	d.startReader()

	select {
	case <-stop:
		return 0, ErrStopped
	case <-d.interrupts:
		return InterruptByte, nil
	case r := <-d.rs.ch:
		return r.b, r.err
	}
}

// ReadByteTimeout waits at most timeout for one byte.
func (d *Driver) ReadByteTimeout(timeout time.Duration) (byte, bool, error) {
	d.startReader()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-d.rs.ch:
		if r.err != nil {
			return 0, false, r.err
		}
		return r.b, true, nil
	case <-timer.C:
		return 0, false, nil
	}
}
