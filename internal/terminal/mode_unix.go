//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import "golang.org/x/sys/unix"

type modeState struct {
	termios unix.Termios
}

// enterRaw clears only ECHO and ICANON. ISIG stays on so Ctrl+C still
// raises SIGINT, which the signal handler turns back into InterruptByte.
func enterRaw(fd int) (*modeState, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	saved := &modeState{termios: *t}

	raw := *t
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return saved, nil
}

func restoreMode(fd int, s *modeState) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, &s.termios)
}
