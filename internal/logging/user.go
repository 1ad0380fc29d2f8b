package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// User-facing output functions with status prefixes.
// They write through the primary and error pipelines configured with
// SetUserOutput, separate from the structured debug logging.

// Status indicators shared with the widget completion lines.
const (
	GlyphInfo    = "ℹ"
	GlyphSuccess = "✓"
	GlyphWarning = "⚠"
	GlyphError   = "✗"
)

var (
	userMu  sync.Mutex
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserOutput routes user-facing lines. A nil writer keeps the current one.
func SetUserOutput(out, errOut io.Writer) {
	userMu.Lock()
	defer userMu.Unlock()
	if out != nil {
		userOut = out
	}
	if errOut != nil {
		userErr = errOut
	}
}

func userLine(toErr bool, glyph, format string, args ...interface{}) {
	userMu.Lock()
	defer userMu.Unlock()
	w := userOut
	if toErr {
		w = userErr
	}
	fmt.Fprintf(w, glyph+" "+format+"\n", args...)
}

// UserInfo prints an info message to the primary pipeline.
func UserInfo(format string, args ...interface{}) {
	userLine(false, GlyphInfo, format, args...)
}

// UserSuccess prints a success message to the primary pipeline.
func UserSuccess(format string, args ...interface{}) {
	userLine(false, GlyphSuccess, format, args...)
}

// UserWarning prints a warning message to the error pipeline.
func UserWarning(format string, args ...interface{}) {
	userLine(true, GlyphWarning, format, args...)
}

// UserError prints an error message to the error pipeline.
func UserError(format string, args ...interface{}) {
	userLine(true, GlyphError, format, args...)
}
