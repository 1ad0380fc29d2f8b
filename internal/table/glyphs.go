package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Glyphs is the set of characters used to draw borders. Top and Bottom
// draw horizontal rules, Left and Right the outer edges, and Left also
// separates columns. MiddleTop, Middle and MiddleBottom are the column
// joints of the top rule, the header separator and the bottom rule.
type Glyphs = lipgloss.Border

var (
	Rounded = lipgloss.RoundedBorder()
	Square  = lipgloss.NormalBorder()
	Double  = lipgloss.DoubleBorder()
	ASCII   = lipgloss.ASCIIBorder()
)

var borders = map[string]Glyphs{
	"rounded": Rounded,
	"square":  Square,
	"double":  Double,
	"ascii":   ASCII,
}

// BorderNames lists the names ParseBorder accepts.
func BorderNames() []string {
	names := make([]string, 0, len(borders))
	for n := range borders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseBorder returns the glyph set with the given name.
func ParseBorder(name string) (Glyphs, error) {
	g, ok := borders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Glyphs{}, fmt.Errorf("unknown border %q (want one of %s)", name, strings.Join(BorderNames(), ", "))
	}
	return g, nil
}
