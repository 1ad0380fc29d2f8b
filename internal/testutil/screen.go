package testutil

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Screen is an in-memory terminal that understands the handful of escapes
// the renderer and driver emit: cursor up/down, column 0, erase to end of
// screen or line, and cursor visibility. It is an io.Writer.
type Screen struct {
	mu           sync.Mutex
	lines        [][]rune
	row, col     int
	pending      []byte
	raw          strings.Builder
	cursorHidden bool
}

// NewScreen returns an empty screen.
func NewScreen() *Screen {
	return &Screen{}
}

// Write interprets p, keeping incomplete escape sequences for the next call.
func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw.Write(p)
	buf := append(s.pending, p...)
	s.pending = nil

	for i := 0; i < len(buf); {
		switch c := buf[i]; {
		case c == 0x1b:
			n, ok := s.escape(buf[i:])
			if !ok {
				s.pending = append([]byte(nil), buf[i:]...)
				return len(p), nil
			}
			i += n
		case c == '\r':
			s.col = 0
			i++
		case c == '\n':
			s.row++
			s.col = 0
			s.ensureRow()
			i++
		default:
			r, size := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError && !utf8.FullRune(buf[i:]) {
				s.pending = append([]byte(nil), buf[i:]...)
				return len(p), nil
			}
			s.put(r)
			i += size
		}
	}
	return len(p), nil
}

func (s *Screen) ensureRow() {
	for len(s.lines) <= s.row {
		s.lines = append(s.lines, nil)
	}
}

func (s *Screen) put(r rune) {
	s.ensureRow()
	line := s.lines[s.row]
	for len(line) < s.col {
		line = append(line, ' ')
	}
	if s.col < len(line) {
		line[s.col] = r
	} else {
		line = append(line, r)
	}
	s.lines[s.row] = line
	s.col++
}

// escape handles one sequence at the start of b and returns its length.
func (s *Screen) escape(b []byte) (int, bool) {
	if len(b) < 2 {
		return 0, false
	}
	if b[1] != '[' {
		return 2, true
	}
	end := 2
	for end < len(b) && (b[end] < 0x40 || b[end] > 0x7e) {
		end++
	}
	if end == len(b) {
		return 0, false
	}
	params := string(b[2:end])
	final := b[end]

	n := 1
	if v, err := strconv.Atoi(strings.TrimPrefix(params, "?")); err == nil {
		n = v
	}

	switch final {
	case 'A':
		s.row = max(0, s.row-n)
	case 'B':
		s.row += n
		s.ensureRow()
	case 'G':
		s.col = max(0, n-1)
	case 'J':
		s.ensureRow()
		if params == "" || params == "0" {
			if s.col < len(s.lines[s.row]) {
				s.lines[s.row] = s.lines[s.row][:s.col]
			}
			s.lines = s.lines[:s.row+1]
		}
	case 'K':
		s.ensureRow()
		if s.col < len(s.lines[s.row]) {
			s.lines[s.row] = s.lines[s.row][:s.col]
		}
	case 'l':
		if params == "?25" {
			s.cursorHidden = true
		}
	case 'h':
		if params == "?25" {
			s.cursorHidden = false
		}
	}
	return end + 1, true
}

// Lines returns the visible lines with trailing empty lines removed.
func (s *Screen) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, strings.TrimRight(string(l), " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// Text returns the visible lines joined by newlines.
func (s *Screen) Text() string {
	return strings.Join(s.Lines(), "\n")
}

// Raw returns every byte written so far.
func (s *Screen) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.String()
}

// CursorHidden reports the cursor state set by ?25l / ?25h.
func (s *Screen) CursorHidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorHidden
}
