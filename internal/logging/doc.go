// Package logging provides logging utilities for forage-ui.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("data update rejected", "rows", len(rows), "error", err)
//	logging.Warn("update stream abandoned", "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loaded %d rows", n)
//	logging.UserSuccess("Selected %s", id)
//	logging.UserWarning("Ignoring invalid update: %v", err)
//	logging.UserError("Step failed: %v", err)
//
// Output destinations are the two logical pipelines set with SetUserOutput:
//   - UserInfo, UserSuccess: primary (stdout by default)
//   - UserWarning, UserError: error (stderr by default)
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
