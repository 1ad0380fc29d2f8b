package keys

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	esc       = 0x1b
	bufferCap = 4
)

// sequences is matched in order; the first exact match wins.
var sequences = []struct {
	seq  string
	kind Kind
}{
	{"\x1b[A", Up},
	{"\x1b[B", Down},
	{"\x1b[C", Right},
	{"\x1b[D", Left},
	{"\x1bOA", Up},
	{"\x1bOB", Down},
	{"\x1bOC", Right},
	{"\x1bOD", Left},
	{"\x1b[5~", PageUp},
	{"\x1b[6~", PageDown},
	{"\x1b[H", Home},
	{"\x1b[F", End},
	{"\x1bOH", Home},
	{"\x1bOF", End},
	{"\x1b[1~", Home},
	{"\x1b[4~", End},
	{"\x1b[3~", Delete},
}

// match reports the kind for an exact sequence, and whether buf is still a
// proper prefix of some entry.
func match(buf string) (kind Kind, ok bool, prefix bool) {
	for _, s := range sequences {
		if s.seq == buf {
			return s.kind, true, false
		}
		if !prefix && len(buf) < len(s.seq) && strings.HasPrefix(s.seq, buf) {
			prefix = true
		}
	}
	return 0, false, prefix
}

// parser holds the partial sequence between bytes.
type parser struct {
	buf [bufferCap]byte
	n   int
}

func (p *parser) reset() {
	p.n = 0
}

// pendingEscape reports whether the buffer holds only an ESC byte.
func (p *parser) pendingEscape() bool {
	return p.n == 1 && p.buf[0] == esc
}

// pendingSequence reports whether the buffer holds the start of an escape
// sequence. Only this state needs a timed follow-up read.
func (p *parser) pendingSequence() bool {
	return p.n > 0 && p.buf[0] == esc
}

// flush ends a partial sequence once no more bytes are coming: the ESC is
// emitted on its own and the bytes after it are decoded as fresh input, so
// Alt+[ becomes Escape then '['. A partial UTF-8 rune is dropped.
func (p *parser) flush(dst []KeyStroke) []KeyStroke {
	if !p.pendingSequence() {
		p.reset()
		return dst
	}
	var rest [bufferCap]byte
	n := copy(rest[:], p.buf[1:p.n])
	p.reset()
	dst = append(dst, Key(Escape))
	for _, b := range rest[:n] {
		dst = p.push(dst, b)
	}
	return dst
}

// push feeds one byte and appends completed strokes to dst.
func (p *parser) push(dst []KeyStroke, b byte) []KeyStroke {
	if p.n == 0 {
		return p.start(dst, b)
	}

	if p.buf[0] == esc {
		if p.pendingEscape() && b != '[' && b != 'O' {
			// ESC followed by something that cannot open a sequence.
			p.reset()
			dst = append(dst, Key(Escape))
			return p.push(dst, b)
		}
		p.buf[p.n] = b
		p.n++
		kind, ok, prefix := match(string(p.buf[:p.n]))
		switch {
		case ok:
			p.reset()
			return append(dst, Key(kind))
		case !prefix || p.n == bufferCap:
			p.reset()
		}
		return dst
	}

	// UTF-8 continuation.
	if !utf8.RuneStart(b) {
		p.buf[p.n] = b
		p.n++
		if utf8.FullRune(p.buf[:p.n]) {
			r, _ := utf8.DecodeRune(p.buf[:p.n])
			p.reset()
			if printable(r) {
				dst = append(dst, Char(r))
			}
		} else if p.n == bufferCap {
			p.reset()
		}
		return dst
	}

	// Truncated UTF-8 sequence; drop it and treat b as fresh input.
	p.reset()
	return p.start(dst, b)
}

func (p *parser) start(dst []KeyStroke, b byte) []KeyStroke {
	switch {
	case b == esc:
		p.buf[0] = b
		p.n = 1
	case b == '\r' || b == '\n':
		dst = append(dst, Key(Return))
	case b == 0x08:
		dst = append(dst, Key(Backspace))
	case b == 0x7f:
		dst = append(dst, Key(Delete))
	case b < utf8.RuneSelf:
		if printable(rune(b)) {
			dst = append(dst, Char(rune(b)))
		}
	case utf8.RuneStart(b):
		p.buf[0] = b
		p.n = 1
	}
	return dst
}

func printable(r rune) bool {
	return r != utf8.RuneError && !unicode.IsControl(r) && unicode.IsPrint(r)
}
