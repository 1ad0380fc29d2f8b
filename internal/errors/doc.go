// Package errors provides typed errors with exit codes for forage-ui.
//
// # Error Types
//
// UIError is the base error type that wraps an error with an exit code:
//
//	type UIError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess          = 0   // Success
//	ExitGeneralError     = 1   // General/unknown errors
//	ExitNonInteractive   = 2   // Interactive widget without a terminal
//	ExitInvalidTableData = 3   // Row/column cardinality mismatch
//	ExitEmptyTable       = 4   // Nothing to select from
//	ExitDataSource       = 5   // Table data source failed
//	ExitConfigError      = 6   // Configuration error
//	ExitUserCancelled    = 130 // User pressed the cancel key
//
// # Categories
//
// NonInteractiveTerminal and EmptyTable are fatal to the widget call that
// raised them. InvalidTableData is recoverable: a live table keeps its last
// valid state and the caller is warned. UserCancelled is an expected outcome,
// not a bug, and callers usually test for it with IsUserCancelled:
//
//	idx, err := component.Select(ctx, env, opts)
//	if errors.IsUserCancelled(err) {
//	    return nil
//	}
//
// The package-level sentinels match any UIError of the same category:
//
//	errors.Is(err, errors.ErrEmptyTable)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
