// Package tui provides the full-screen table browser for forage-ui.
//
// The browser uses the Bubble Tea framework to show a live table in the
// whole terminal window. It drives the same live.State as the inline select
// widget, so selection tracking and update handling behave the same in both
// modes:
//
//	state, err := live.New(data, live.WithViewportSize(10))
//	sel, err := tui.Run(ctx, state, tui.Options{
//	    Title:     "Hosts",
//	    Updates:   watcher.Stream(ctx),
//	    AltScreen: true,
//	})
//	if errors.IsUserCancelled(err) {
//	    // Esc, q or Ctrl+C
//	}
//
// # Browser Features
//
//   - Keyboard navigation (j/k or arrows, pgup/pgdn, g/G)
//   - The visible rows grow and shrink with the window
//   - Background updates repaint the table and keep the selection on its row
//   - ? toggles the full key help
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - key bindings and help
//   - github.com/charmbracelet/lipgloss - Styling, through the theme
package tui
