// Package live holds the shared state of a selectable table that can be
// refreshed while the user is navigating it.
//
// A State owns the current table.Data, the selected index and the
// viewport. Every mutator and Snapshot take the same mutex, so the input
// loop and a background producer never see a half-updated triple.
//
// When data is replaced the selection is carried over according to the
// Tracking chosen at construction:
//
//   - TrackIndex keeps the position and clamps it.
//   - TrackRowKey(fn) finds the row whose key matches the previously
//     selected row, or clamps if it is gone.
//   - TrackAutomatic uses table.Row.Key: the row ID, else the first cell,
//     else the whole row.
//
// SelectCurrent and Cancel are terminal. Both close Done, which the key
// listener and Consume watch, so the foreground and background loops stop
// together.
package live
