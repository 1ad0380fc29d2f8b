package keys

import "fmt"

// Kind identifies a decoded key.
type Kind int

const (
	Return Kind = iota
	Printable
	Up
	Down
	Left
	Right
	Backspace
	Delete
	Escape
	PageUp
	PageDown
	Home
	End
)

var kindNames = [...]string{
	Return:    "return",
	Printable: "printable",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	Backspace: "backspace",
	Delete:    "delete",
	Escape:    "escape",
	PageUp:    "pgup",
	PageDown:  "pgdown",
	Home:      "home",
	End:       "end",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// KeyStroke is one decoded key. Char is set only for Printable.
type KeyStroke struct {
	Kind Kind
	Char rune
}

// Key returns a stroke of the given kind.
func Key(k Kind) KeyStroke {
	return KeyStroke{Kind: k}
}

// Char returns a Printable stroke.
func Char(r rune) KeyStroke {
	return KeyStroke{Kind: Printable, Char: r}
}

func (k KeyStroke) String() string {
	if k.Kind == Printable {
		return string(k.Char)
	}
	return k.Kind.String()
}
