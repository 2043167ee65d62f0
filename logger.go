package rkphi

import (
	"fmt"
	"io"
	"strings"
)

// Logger accumulates one line per step during a Facade run and writes them
// to Output when the run finishes, adapted directly from the teacher's
// Logger (same accumulate-then-flush shape, new per-step content: time,
// dt and EEst rather than a CSV state dump).
type Logger struct {
	Output io.Writer
	buff   strings.Builder
}

// NewLogger returns a Logger writing to w.
func NewLogger(w io.Writer) Logger {
	return Logger{Output: w}
}

// Logf formats a line into the logger's buffer.
func (l *Logger) Logf(format string, a ...interface{}) {
	l.buff.WriteString(fmt.Sprintf(format, a...))
	l.buff.WriteByte('\n')
}

func (l *Logger) flush() {
	if l.Output == nil {
		l.buff.Reset()
		return
	}
	l.Output.Write([]byte(l.buff.String()))
	l.buff.Reset()
}
