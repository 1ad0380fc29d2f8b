//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// pollIntervalMS bounds how long ReadByte waits before re-checking its stop
// channel and pending interrupts.
const pollIntervalMS = 50

type readerState struct{}

// ReadByte blocks until a byte arrives, an interrupt is pending, or stop is
// closed (ErrStopped).
func (d *Driver) ReadByte(stop <-chan struct{}) (byte, error) {
	d.readers.Add(1)
	defer d.readers.Add(-1)

	for {
		select {
		case <-stop:
			return 0, ErrStopped
		case <-d.interrupts:
			return InterruptByte, nil
		default:
		}

		b, ok, err := d.pollRead(pollIntervalMS)
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
	}
}

// ReadByteTimeout waits at most timeout for one byte. ok is false when
// nothing arrived in time.
func (d *Driver) ReadByteTimeout(timeout time.Duration) (byte, bool, error) {
	return d.pollRead(int(timeout / time.Millisecond))
}

func (d *Driver) pollRead(timeoutMS int) (byte, bool, error) {
	if d.fd < 0 {
		return 0, false, io.EOF
	}

	fds := []unix.PollFd{
		{Fd: int32(d.fd), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	if fds[0].Revents&unix.POLLNVAL != 0 {
		return 0, false, io.EOF
	}

	var buf [1]byte
	rn, err := unix.Read(d.fd, buf[:])
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, false, nil
		}
		return 0, false, err
	}
	if rn == 0 {
		return 0, false, io.EOF
	}
	return buf[0], true, nil
}
