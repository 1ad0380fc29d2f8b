package table

// DefaultWidth is assumed when the terminal width is unknown.
const DefaultWidth = 80

// Overhead is the space borders and padding take for n columns.
func Overhead(columns, padding int) int {
	return columns + 1 + 2*max(0, padding)*columns
}

// Layout computes a width for every column. rows may be empty.
func Layout(columns []Column, rows []Row, terminalWidth, padding int) []int {
	n := len(columns)
	if n == 0 {
		return nil
	}
	if terminalWidth <= 0 {
		terminalWidth = DefaultWidth
	}
	available := terminalWidth - Overhead(n, padding)

	widths := make([]int, n)
	var flex []int
	for i, c := range columns {
		switch c.Width.Kind {
		case Fixed:
			widths[i] = max(1, c.Width.N)
		case Flexible:
			widths[i] = max(1, c.Width.Min)
			if c.Width.Max > 0 {
				widths[i] = min(widths[i], max(1, c.Width.Max))
			}
			flex = append(flex, i)
		default:
			widths[i] = max(1, naturalWidth(i, c, rows))
		}
	}

	if leftover := available - sum(widths); leftover > 0 {
		distribute(widths, columns, flex, leftover)
	}
	if sum(widths) > available {
		shrink(widths, available)
	}
	return widths
}

func naturalWidth(i int, c Column, rows []Row) int {
	w := DisplayWidth(c.Title)
	for _, r := range rows {
		if i < len(r.Cells) {
			w = max(w, DisplayWidth(r.Cells[i]))
		}
	}
	return w
}

// distribute shares leftover evenly across flexible columns, respecting
// their maximums. Remainders go to the leftmost columns.
func distribute(widths []int, columns []Column, flex []int, leftover int) {
	for leftover > 0 {
		var growable []int
		for _, i := range flex {
			if m := columns[i].Width.Max; m == 0 || widths[i] < m {
				growable = append(growable, i)
			}
		}
		if len(growable) == 0 {
			return
		}

		per, rem := leftover/len(growable), leftover%len(growable)
		given := 0
		for j, i := range growable {
			add := per
			if j < rem {
				add++
			}
			if m := columns[i].Width.Max; m > 0 {
				add = min(add, m-widths[i])
			}
			widths[i] += add
			given += add
		}
		if given == 0 {
			return
		}
		leftover -= given
	}
}

// shrink scales widths down to fit available, then takes single cells from
// the widest columns until the sum fits or every column is 1.
func shrink(widths []int, available int) {
	total := sum(widths)
	if available < 0 {
		available = 0
	}
	for i, w := range widths {
		widths[i] = max(1, w*available/total)
	}

	for excess := sum(widths) - available; excess > 0; excess-- {
		idx := widest(widths)
		if idx < 0 {
			return
		}
		widths[idx]--
	}
}

func widest(widths []int) int {
	idx := -1
	best := 1
	for i, w := range widths {
		if w > best {
			best = w
			idx = i
		}
	}
	return idx
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
