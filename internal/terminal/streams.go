package terminal

import (
	"io"
	"os"
)

// Pipeline selects one of the two logical output pipelines.
type Pipeline int

const (
	// Primary carries regular widget output (stdout).
	Primary Pipeline = iota
	// Error carries warnings, failures and interactive prompts (stderr).
	Error
)

func (p Pipeline) String() string {
	switch p {
	case Primary:
		return "primary"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Streams bundles the input file and both output pipelines.
type Streams struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
}

// Std returns streams bound to the process stdin, stdout and stderr.
func Std() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Writer returns the writer behind a pipeline. Unknown pipelines and unset
// writers fall back to io.Discard.
func (s Streams) Writer(p Pipeline) io.Writer {
	var w io.Writer
	switch p {
	case Primary:
		w = s.Out
	case Error:
		w = s.Err
	}
	if w == nil {
		return io.Discard
	}
	return w
}

type flusher interface {
	Flush() error
}

// writeFlush writes s and flushes buffered writers so escapes take effect
// immediately.
func writeFlush(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
