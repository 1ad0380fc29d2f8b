// Package style holds the colors and glyph lines shared by every widget.
package style

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

// Theme renders status lines and highlights for one output.
type Theme struct {
	Color bool

	Title    lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Spinner  lipgloss.Style
}

// New builds a theme bound to w. With color off every style renders plain
// text.
func New(w io.Writer, color bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if color {
		profile := termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		r.SetColorProfile(profile)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Theme{
		Color:    color,
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("42")),
		Failure:  r.NewStyle().Foreground(lipgloss.Color("196")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("214")),
		Info:     r.NewStyle().Foreground(lipgloss.Color("39")),
		Dim:      r.NewStyle().Foreground(lipgloss.Color("241")),
		Selected: r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Spinner:  r.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

// Plain is a colorless theme.
func Plain() *Theme {
	return New(io.Discard, false)
}

// Highlight marks the selected table row. Without color it falls back to
// reverse video so the selection stays visible.
func (t *Theme) Highlight(line string) string {
	if !t.Color {
		return table.Reverse(line)
	}
	return t.Selected.Render(line)
}

// Elapsed formats a duration the way completion lines show it.
func Elapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// SuccessLine is "✓ title (elapsed)".
func (t *Theme) SuccessLine(title string, elapsed time.Duration) string {
	return fmt.Sprintf("%s %s %s", t.Success.Render(logging.GlyphSuccess), title, t.Dim.Render("("+Elapsed(elapsed)+")"))
}

// FailureLine is "✗ title (elapsed)".
func (t *Theme) FailureLine(title string, elapsed time.Duration) string {
	return fmt.Sprintf("%s %s %s", t.Failure.Render(logging.GlyphError), title, t.Dim.Render("("+Elapsed(elapsed)+")"))
}

// StatusLine prefixes text with a colored glyph.
func (t *Theme) StatusLine(glyph, text string) string {
	var s lipgloss.Style
	switch glyph {
	case logging.GlyphSuccess:
		s = t.Success
	case logging.GlyphError:
		s = t.Failure
	case logging.GlyphWarning:
		s = t.Warning
	default:
		s = t.Info
	}
	return s.Render(glyph) + " " + text
}

var spinners = map[string]spinner.Spinner{
	"dot":     spinner.Dot,
	"line":    spinner.Line,
	"minidot": spinner.MiniDot,
	"points":  spinner.Points,
	"pulse":   spinner.Pulse,
	"globe":   spinner.Globe,
	"jump":    spinner.Jump,
	"meter":   spinner.Meter,
}

// SpinnerNames lists the names Spinner accepts.
func SpinnerNames() []string {
	names := make([]string, 0, len(spinners))
	for n := range spinners {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Spinner returns the frame set with the given name.
func Spinner(name string) (spinner.Spinner, error) {
	s, ok := spinners[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return spinner.Spinner{}, fmt.Errorf("unknown spinner %q (want one of %s)", name, strings.Join(SpinnerNames(), ", "))
	}
	return s, nil
}
