package patchmatch

import (
	"fmt"
	"io"
)

// Logger is a thin printf-style wrapper around an io.Writer, in the idiom
// the teacher uses for its verbose trace (metric.go's
// "output_verbose.Write([]byte(...))" calls): no logging library, just a
// writer that defaults to silence when unset.
type Logger struct {
	w io.Writer
}

// NewLogger wraps w. A nil w produces a silent Logger equivalent to
// io.Discard.
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = io.Discard
	}
	return Logger{w: w}
}

// Logf writes a formatted, newline-terminated trace line. Errors writing to
// the underlying writer are ignored, matching the teacher's own
// "_, _ = output_verbose.Write(...)" idiom.
func (l Logger) Logf(format string, args ...any) {
	if l.w == nil {
		return
	}
	_, _ = fmt.Fprintf(l.w, format+"\n", args...)
}
