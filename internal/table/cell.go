package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated cells.
const Ellipsis = "…"

// width measures cells the same way whatever the locale, so Ellipsis and
// other ambiguous-width runes always count as 1 and ansi.Truncate agrees.
var width = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// DisplayWidth is the number of terminal cells s occupies, ignoring ANSI
// escapes and counting wide characters as 2.
func DisplayWidth(s string) int {
	return width.StringWidth(ansi.Strip(s))
}

func hasEscapes(s string) bool {
	return strings.IndexByte(s, 0x1b) >= 0
}

// Truncate shortens s to at most w cells. Truncated output ends in
// Ellipsis; output that already fits is returned unchanged.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if DisplayWidth(s) <= w {
		return s
	}
	if w == 1 {
		return Ellipsis
	}
	if hasEscapes(s) {
		return ansi.Truncate(s, w, Ellipsis)
	}
	return width.Truncate(s, w, Ellipsis)
}

// Pad fills s with spaces to w cells. Center puts the odd space on the
// right. Content wider than w is returned as is.
func Pad(s string, w int, align Align) string {
	gap := w - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case Right:
		return strings.Repeat(" ", gap) + s
	case Center:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// Fit truncates and pads s to exactly w cells.
func Fit(s string, w int, align Align) string {
	return Pad(Truncate(s, w), w, align)
}
