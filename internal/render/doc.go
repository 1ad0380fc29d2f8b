// Package render repaints multi-line blocks in place.
//
// The Terminal renderer remembers how many lines the previous frame had
// and erases exactly that many before printing the next one, so a block can
// grow or shrink without scrolling the terminal or leaving stale lines. The
// Append renderer is its non-interactive counterpart: every frame becomes
// plain lines appended to the output, which keeps piped and CI logs linear.
//
// Both write only through terminal.Streams pipelines.
package render
