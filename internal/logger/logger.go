// Package logger provides the leveled diagnostics used by the CLI.
// Output goes to a single writer, normally stderr, so stdout stays free for
// charts and exported data.
package logger

import (
	"io"
	"log"
	"os"
)

type Logger struct {
	info    *log.Logger
	warn    *log.Logger
	err     *log.Logger
	debug   *log.Logger
	verbose bool
}

// New returns a logger writing to w. Debug lines are dropped unless verbose.
func New(w io.Writer, verbose bool) *Logger {
	flags := log.Ltime
	return &Logger{
		info:    log.New(w, "[INFO] ", flags),
		warn:    log.New(w, "[WARN] ", flags),
		err:     log.New(w, "[ERROR] ", flags),
		debug:   log.New(w, "[DEBUG] ", flags|log.Lmicroseconds),
		verbose: verbose,
	}
}

func Default() *Logger { return New(os.Stderr, false) }

// Discard returns a logger that writes nothing.
func Discard() *Logger { return New(io.Discard, false) }

func (l *Logger) Verbose() bool { return l.verbose }

func (l *Logger) Info(format string, args ...any) { l.info.Printf(format, args...) }

func (l *Logger) Warn(format string, args ...any) { l.warn.Printf(format, args...) }

func (l *Logger) Error(format string, args ...any) { l.err.Printf(format, args...) }

func (l *Logger) Debug(format string, args ...any) {
	if l.verbose {
		l.debug.Printf(format, args...)
	}
}
