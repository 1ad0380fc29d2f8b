package table

import "strings"

// Style controls how a table is drawn.
type Style struct {
	Glyphs          Glyphs
	Padding         int
	HeaderSeparator bool
}

// DefaultStyle is rounded borders, one space of padding and a header
// separator.
func DefaultStyle() Style {
	return Style{
		Glyphs:          Rounded,
		Padding:         1,
		HeaderSeparator: true,
	}
}

// Reverse highlights a line with reverse video.
func Reverse(line string) string {
	return "\x1b[7m" + line + "\x1b[27m"
}

// Layout computes column widths for d under this style's padding.
func (s Style) Layout(d Data, terminalWidth int) []int {
	return Layout(d.Columns, d.Rows, terminalWidth, s.Padding)
}

// Render validates d and draws every row.
func (s Style) Render(d Data, terminalWidth int) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	widths := s.Layout(d, terminalWidth)
	return s.RenderWindow(d, widths, 0, d.Len(), -1, nil), nil
}

// RenderWindow draws the header and rows [start, end) using widths. The
// row at index selected is passed through highlight; a nil highlight uses
// Reverse. Pass selected -1 for no selection. d must already be valid.
func (s Style) RenderWindow(d Data, widths []int, start, end, selected int, highlight func(string) string) string {
	if highlight == nil {
		highlight = Reverse
	}
	start = max(0, start)
	end = min(end, d.Len())

	lines := make([]string, 0, max(0, end-start)+4)
	lines = append(lines, s.rule(widths, s.Glyphs.Top, s.Glyphs.TopLeft, s.Glyphs.MiddleTop, s.Glyphs.TopRight))
	lines = append(lines, s.line(d.Titles(), d.Columns, widths))
	if s.HeaderSeparator {
		lines = append(lines, s.rule(widths, s.Glyphs.Top, s.Glyphs.MiddleLeft, s.Glyphs.Middle, s.Glyphs.MiddleRight))
	}
	for i := start; i < end; i++ {
		l := s.line(d.Rows[i].Cells, d.Columns, widths)
		if i == selected {
			l = highlight(l)
		}
		lines = append(lines, l)
	}
	lines = append(lines, s.rule(widths, s.Glyphs.Bottom, s.Glyphs.BottomLeft, s.Glyphs.MiddleBottom, s.Glyphs.BottomRight))
	return strings.Join(lines, "\n")
}

func (s Style) rule(widths []int, fill, left, mid, right string) string {
	pad := max(0, s.Padding)
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat(fill, w+2*pad))
	}
	b.WriteString(right)
	return b.String()
}

func (s Style) line(cells []string, columns []Column, widths []int) string {
	pad := strings.Repeat(" ", max(0, s.Padding))
	var b strings.Builder
	b.WriteString(s.Glyphs.Left)
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		var align Align
		if i < len(columns) {
			align = columns[i].Align
		}
		b.WriteString(pad)
		b.WriteString(Fit(cell, w, align))
		b.WriteString(pad)
		if i == len(widths)-1 {
			b.WriteString(s.Glyphs.Right)
		} else {
			b.WriteString(s.Glyphs.Left)
		}
	}
	return b.String()
}
