// Package table lays out and draws bordered tables of pre-formatted cells.
//
// # Model
//
// Data holds Columns and Rows. Every row must have exactly one cell per
// column; Validate checks this before anything is drawn. Cells are treated
// as opaque text that may already carry ANSI styling.
//
// # Layout
//
// Layout turns column width policies into concrete widths for a terminal:
//
//	overhead  = (columns + 1) borders + 2 * padding * columns
//	available = terminalWidth - overhead   (terminalWidth 80 when unknown)
//
// Fixed columns take their width, Auto columns take their widest header or
// cell, Flexible columns start at their minimum and share what is left,
// capped at their maximum. If the result is still too wide every column is
// shrunk proportionally (never below 1) and then trimmed from the widest
// until the total fits. With fewer than one cell per column available the
// widths stay at 1 and the table overflows rather than failing.
//
// # Drawing
//
//	style := table.DefaultStyle()
//	out, err := style.Render(data, driver.Width())
//
// RenderWindow draws a slice of rows with precomputed widths and a
// highlighted selected row; live tables use it with a viewport.
package table
