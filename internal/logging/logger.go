// Package logging holds the logger shared by the itinerary server and the
// browser form, plus the HTTP request/response logging middleware.
package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

// Logger represents the minimal logging interface used across the project.
type Logger interface {
	Printf(format string, v ...any)
}

type stdLoggerProvider interface {
	StdLogger() *log.Logger
}

type stdLogger struct {
	base *log.Logger
}

// Options tunes loggers built by NewWithOptions.
type Options struct {
	Writer io.Writer
	// Prefix is written before every entry, e.g. "[activity-form] ".
	Prefix string
	// Flags are log package flags; zero means log.LstdFlags.
	Flags int
}

var (
	defaultWriter   io.Writer = os.Stdout
	defaultWriterMu sync.RWMutex
)

// New returns a Logger writing to the default writer (stdout unless
// SetDefaultWriter changed it).
func New() Logger {
	return NewWithWriter(getDefaultWriter())
}

// NewWithWriter builds a Logger that writes to w with standard date/time flags.
func NewWithWriter(w io.Writer) Logger {
	return NewWithOptions(Options{Writer: w})
}

// NewWithOptions builds a Logger from opts.
func NewWithOptions(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	flags := opts.Flags
	if flags == 0 {
		flags = log.LstdFlags
	}
	return &stdLogger{base: log.New(w, opts.Prefix, flags)}
}

// SetDefaultWriter overrides the writer used by New().
func SetDefaultWriter(w io.Writer) {
	defaultWriterMu.Lock()
	defer defaultWriterMu.Unlock()
	if w == nil {
		defaultWriter = os.Stdout
		return
	}
	defaultWriter = w
}

func getDefaultWriter() io.Writer {
	defaultWriterMu.RLock()
	defer defaultWriterMu.RUnlock()
	return defaultWriter
}

// AsStdLogger returns the underlying *log.Logger when available so packages
// like net/http can keep using their native logger type.
func AsStdLogger(logger Logger) *log.Logger {
	if logger == nil {
		return nil
	}
	if provider, ok := logger.(stdLoggerProvider); ok {
		return provider.StdLogger()
	}
	return nil
}

func (l *stdLogger) Printf(format string, v ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Printf(format, v...)
}

func (l *stdLogger) StdLogger() *log.Logger {
	if l == nil {
		return nil
	}
	return l.base
}
