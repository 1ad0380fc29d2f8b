package terminal

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Environment variables consulted by the predicates.
const (
	EnvNonInteractive = "FORAGE_UI_NON_INTERACTIVE"
	EnvNoColor        = "NO_COLOR"
	EnvForceColor     = "FORCE_COLOR"
)

// LookupEnv matches os.LookupEnv so tests can pass a map-backed lookup.
type LookupEnv func(key string) (string, bool)

// OSEnv is the process environment.
var OSEnv LookupEnv = os.LookupEnv

// MapEnv returns a LookupEnv backed by a map.
func MapEnv(m map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

type fdProvider interface {
	Fd() uintptr
}

func fdOf(w any) (uintptr, bool) {
	fp, ok := w.(fdProvider)
	if !ok {
		return 0, false
	}
	fd := fp.Fd()
	if fd == ^uintptr(0) {
		return 0, false
	}
	return fd, true
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w any) bool {
	fd, ok := fdOf(w)
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether live widgets may run against w: it must be
// an attached terminal, TERM must not be "dumb", and the non-interactive
// override must be unset.
func IsInteractive(w io.Writer, env LookupEnv) bool {
	if env == nil {
		env = OSEnv
	}
	if v, ok := env(EnvNonInteractive); ok && v != "" && v != "0" {
		return false
	}
	if v, ok := env("TERM"); ok && v == "dumb" {
		return false
	}
	return IsTerminal(w)
}

// ShouldColor reports whether output to w should carry color. NO_COLOR
// disables color, FORCE_COLOR forces it, otherwise color is on only for
// terminals.
func ShouldColor(w io.Writer, env LookupEnv) bool {
	if env == nil {
		env = OSEnv
	}
	if v, ok := env(EnvNoColor); ok && v != "" {
		return false
	}
	if v, ok := env(EnvForceColor); ok && v != "" && v != "0" {
		return true
	}
	return IsTerminal(w)
}
