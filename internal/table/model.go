package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
)

// WidthKind selects how a column's width is decided.
type WidthKind int

const (
	Auto WidthKind = iota
	Fixed
	Flexible
)

// WidthPolicy describes one column's width. N is used by Fixed, Min and Max
// by Flexible; Max 0 means unbounded.
type WidthPolicy struct {
	Kind WidthKind
	N    int
	Min  int
	Max  int
}

// AutoWidth sizes a column to its widest header or cell.
func AutoWidth() WidthPolicy {
	return WidthPolicy{Kind: Auto}
}

// FixedWidth always uses n cells.
func FixedWidth(n int) WidthPolicy {
	return WidthPolicy{Kind: Fixed, N: n}
}

// FlexibleWidth starts at min and grows up to max (0 for no limit).
func FlexibleWidth(min, max int) WidthPolicy {
	return WidthPolicy{Kind: Flexible, Min: min, Max: max}
}

// ParseWidth parses "auto", "N" or "fixed:N", and "flex:MIN" or
// "flex:MIN:MAX".
func ParseWidth(s string) (WidthPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return AutoWidth(), nil
	}

	parts := strings.Split(s, ":")
	nums := make([]int, 0, 2)
	for _, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return WidthPolicy{}, fmt.Errorf("invalid width %q", s)
		}
		nums = append(nums, n)
	}

	switch parts[0] {
	case "fixed":
		if len(nums) != 1 {
			return WidthPolicy{}, fmt.Errorf("invalid width %q: want fixed:N", s)
		}
		return FixedWidth(nums[0]), nil
	case "flex":
		switch len(nums) {
		case 1:
			return FlexibleWidth(nums[0], 0), nil
		case 2:
			if nums[1] != 0 && nums[1] < nums[0] {
				return WidthPolicy{}, fmt.Errorf("invalid width %q: max below min", s)
			}
			return FlexibleWidth(nums[0], nums[1]), nil
		}
		return WidthPolicy{}, fmt.Errorf("invalid width %q: want flex:MIN[:MAX]", s)
	default:
		if n, err := strconv.Atoi(parts[0]); err == nil && len(parts) == 1 && n >= 0 {
			return FixedWidth(n), nil
		}
		return WidthPolicy{}, fmt.Errorf("invalid width %q", s)
	}
}

// Align is the horizontal alignment of a column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

// ParseAlign parses "left", "center" or "right".
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return Left, nil
	case "center", "centre":
		return Center, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("invalid alignment %q", s)
	}
}

func (a Align) String() string {
	switch a {
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return "left"
	}
}

// Column is one table column.
type Column struct {
	Title string
	Width WidthPolicy
	Align Align
}

// Col returns a left-aligned auto-width column.
func Col(title string) Column {
	return Column{Title: title}
}

// Row is one table row. ID is optional; when set it identifies the row
// across refreshes.
type Row struct {
	ID    string
	Cells []string
}

// NewRow returns a row without an explicit ID.
func NewRow(cells ...string) Row {
	return Row{Cells: cells}
}

// Key derives a stable identity: the explicit ID, else the first cell,
// else the whole row.
func (r Row) Key() string {
	if r.ID != "" {
		return r.ID
	}
	if len(r.Cells) > 0 && r.Cells[0] != "" {
		return r.Cells[0]
	}
	return strings.Join(r.Cells, "\x1f")
}

// Data is a complete table. It is replaced wholesale, never edited in
// place once handed to a renderer.
type Data struct {
	Columns []Column
	Rows    []Row
}

// Len is the number of rows.
func (d Data) Len() int {
	return len(d.Rows)
}

// Empty reports whether there are no rows.
func (d Data) Empty() bool {
	return len(d.Rows) == 0
}

// Validate checks that there is at least one column and that every row has
// one cell per column.
func (d Data) Validate() error {
	if len(d.Columns) == 0 {
		return errors.NoColumns()
	}
	for i, r := range d.Rows {
		if len(r.Cells) != len(d.Columns) {
			return errors.InvalidTableData(i, len(r.Cells), len(d.Columns))
		}
	}
	return nil
}

// Titles returns the column titles.
func (d Data) Titles() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Title
	}
	return out
}

// IndexOf returns the index of the first row whose key matches, or -1.
func (d Data) IndexOf(key string, keyFn func(Row) string) int {
	if keyFn == nil {
		keyFn = Row.Key
	}
	for i, r := range d.Rows {
		if keyFn(r) == key {
			return i
		}
	}
	return -1
}
