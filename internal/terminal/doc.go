// Package terminal provides the low-level terminal driver for forage-ui.
//
// Features:
//   - Raw input mode that clears only ECHO and ICANON and restores the exact
//     saved flags afterwards
//   - Cursor hide/show emitted and flushed immediately
//   - Blocking reads that stay cancellable through a stop channel, plus a
//     timed read used to tell a lone ESC from an escape sequence
//   - Window size queries with an 80 column fallback
//   - A process-wide signal handler that restores the terminal mid-render
//   - Interactivity and color predicates for choosing between the live and
//     the append-only output modes
//
// All output goes through Streams, the two logical pipelines (primary and
// error), so tests can substitute recording writers.
package terminal
