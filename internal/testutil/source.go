package testutil

import (
	"io"
	"sync"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

// Script is a scripted byte source standing in for a terminal driver.
//
// Input is split into bursts. Bytes inside one burst are available to a
// timed read immediately, the way an escape sequence arrives from a real
// terminal; a timed read at a burst boundary times out. Once the script is
// exhausted ReadByte blocks until its stop channel closes, or returns
// io.EOF when the script was created with EOF set.
type Script struct {
	mu     sync.Mutex
	bursts [][]byte
	pos    int
	EOF    bool
	reads  int
}

// NewScript creates a source from bursts of input.
func NewScript(bursts ...string) *Script {
	s := &Script{}
	for _, b := range bursts {
		s.bursts = append(s.bursts, []byte(b))
	}
	return s
}

// Push appends a burst while the script is in use.
func (s *Script) Push(burst string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bursts = append(s.bursts, []byte(burst))
}

// Reads returns how many bytes have been consumed.
func (s *Script) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *Script) next(sameBurst bool) (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.bursts) > 0 {
		cur := s.bursts[0]
		if s.pos < len(cur) {
			b := cur[s.pos]
			s.pos++
			s.reads++
			return b, true
		}
		s.bursts = s.bursts[1:]
		s.pos = 0
		if sameBurst {
			return 0, false
		}
	}
	return 0, false
}

// ReadByte returns the next byte from any burst.
func (s *Script) ReadByte(stop <-chan struct{}) (byte, error) {
	for {
		if b, ok := s.next(false); ok {
			return b, nil
		}
		if s.EOF {
			return 0, io.EOF
		}
		select {
		case <-stop:
			return 0, terminal.ErrStopped
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// ReadByteTimeout returns the next byte only if it belongs to the burst
// currently being read.
func (s *Script) ReadByteTimeout(time.Duration) (byte, bool, error) {
	b, ok := s.next(true)
	return b, ok, nil
}
