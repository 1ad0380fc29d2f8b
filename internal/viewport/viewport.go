// Package viewport maps a selection onto the visible window of a longer
// list, and slices lists into fixed-size pages.
package viewport

// Viewport is the visible window [Start, End) into Total rows.
//
// Invariant: 0 <= Start <= max(0, Total-Size).
type Viewport struct {
	Start int
	Size  int
	Total int
}

// New returns a viewport of size rows over total rows, starting at the top.
// A size below 1 is treated as 1.
func New(size, total int) Viewport {
	v := Viewport{Size: max(1, size)}
	v.SetTotal(total)
	return v
}

// End is the exclusive end of the visible window.
func (v Viewport) End() int {
	return min(v.Start+v.Size, v.Total)
}

// Visible reports whether index is inside the window.
func (v Viewport) Visible(index int) bool {
	return index >= v.Start && index < v.End()
}

// ScrollToShow moves the window the least amount needed to make index
// visible. Calling it again with the same index changes nothing.
func (v *Viewport) ScrollToShow(index int) {
	switch {
	case index < v.Start:
		v.Start = index
	case index >= v.End():
		v.Start = max(0, index-v.Size+1)
	}
	v.clamp()
}

// SetTotal updates the row count and re-clamps the window.
func (v *Viewport) SetTotal(total int) {
	v.Total = max(0, total)
	v.clamp()
}

// SetSize changes the window height and re-clamps.
func (v *Viewport) SetSize(size int) {
	v.Size = max(1, size)
	v.clamp()
}

func (v *Viewport) clamp() {
	v.Start = min(v.Start, max(0, v.Total-v.Size))
	v.Start = max(0, v.Start)
}
