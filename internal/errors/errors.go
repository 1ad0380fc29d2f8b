package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-ui
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitNonInteractive   = 2
	ExitInvalidTableData = 3
	ExitEmptyTable       = 4
	ExitDataSource       = 5
	ExitConfigError      = 6
	ExitUserCancelled    = 130
)

// UIError is the base error type for forage-ui
type UIError struct {
	Code    int
	Message string
	Cause   error
}

func (e *UIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UIError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *UIError) ExitCode() int {
	return e.Code
}

// Is reports whether target is a UIError carrying the same code, so the
// sentinels below match any error of their category.
func (e *UIError) Is(target error) bool {
	t, ok := target.(*UIError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Code != ExitGeneralError
}

// Sentinels for errors.Is checks.
var (
	ErrNonInteractive   = &UIError{Code: ExitNonInteractive, Message: "terminal is not interactive"}
	ErrInvalidTableData = &UIError{Code: ExitInvalidTableData, Message: "invalid table data"}
	ErrEmptyTable       = &UIError{Code: ExitEmptyTable, Message: "table has no rows"}
	ErrUserCancelled    = &UIError{Code: ExitUserCancelled, Message: "cancelled by user"}
)

// New creates a new UIError
func New(code int, message string) *UIError {
	return &UIError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a UIError
func Wrap(code int, message string, cause error) *UIError {
	return &UIError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NonInteractiveTerminal returns the error raised when an interactive widget
// runs without an attached, unsuppressed terminal.
func NonInteractiveTerminal(widget string) *UIError {
	return New(ExitNonInteractive, fmt.Sprintf("%s requires an interactive terminal", widget))
}

// InvalidTableData returns an error for a row/column cardinality mismatch.
func InvalidTableData(row, got, want int) *UIError {
	return New(ExitInvalidTableData,
		fmt.Sprintf("invalid table data: row %d has %d cells, expected %d", row, got, want))
}

// NoColumns returns an error for a table without columns.
func NoColumns() *UIError {
	return New(ExitInvalidTableData, "invalid table data: no columns defined")
}

// EmptyTable returns an error for a table with no rows to select from
func EmptyTable() *UIError {
	return New(ExitEmptyTable, "table has no rows")
}

// UserCancelled returns the error signalled when the user presses the cancel key
func UserCancelled() *UIError {
	return New(ExitUserCancelled, "cancelled by user")
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *UIError {
	return Wrap(ExitConfigError, message, cause)
}

// DataSourceError returns an error for a failing table data source
func DataSourceError(op string, cause error) *UIError {
	return Wrap(ExitDataSource, fmt.Sprintf("data source %s failed", op), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *UIError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr.ExitCode()
	}
	return ExitGeneralError
}

// IsUserCancelled reports whether err signals a user cancellation.
func IsUserCancelled(err error) bool {
	return errors.Is(err, ErrUserCancelled)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
