// Package component implements the widgets built on the terminal engine.
//
// Every widget takes an *Env describing where output goes and whether a
// live terminal is attached:
//
//	env := &component.Env{
//	    Streams:     terminal.Std(),
//	    Interactive: terminal.IsInteractive(os.Stdout, nil),
//	    Driver:      terminal.NewDriver(os.Stdin, os.Stdout),
//	}
//
// # Runners
//
// RunStep and RunProgress run a unit of work under a spinner. On a terminal
// the status line is repainted in place and replaced by a completion or
// failure line when the work returns; otherwise plain lines are appended.
// A failing unit of work has its error rendered and then returned.
//
// # Interactive Widgets
//
// Confirm, Input, Select, MultiSelect and Paginate need a terminal and
// return errors.ErrNonInteractive without one. Table data is validated
// before the terminal is touched, so invalid or empty tables fail without
// side effects. Escape cancels with errors.ErrUserCancelled.
//
// Select accepts a channel of live.Update values and keeps the selection
// on the same row across updates.
//
// # Output-only Widgets
//
// Table and Alerts work anywhere. Alerts flattens nested groups once and
// sends warnings and errors to the error pipeline.
package component
