// Package debuglog appends timestamped diagnostic lines to a file.
//
// Writes are best-effort: a failure to open or write the file is dropped,
// never returned, so logging cannot change the outcome of the caller.
package debuglog

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// TimestampLayout formats the bracketed prefix of every line.
const TimestampLayout = "2006-01-02 15:04:05.000 -0700"

// unboundedMB stands in for "no size cap" because lumberjack treats 0 as 100MB.
const unboundedMB = math.MaxInt32

// Options configures a Logger.
type Options struct {
	Path       string           // log file; created on first write
	MaxSizeMB  int              // rotate above this size; 0 keeps growing
	MaxBackups int              // rotated files to keep; 0 keeps all
	MaxAgeDays int              // delete rotated files older than this; 0 keeps all
	Now        func() time.Time // clock; defaults to time.Now
}

// Logger writes "[timestamp] message" lines. The zero value and Nop() discard.
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	now func() time.Time
}

// New returns a Logger appending to opts.Path.
// PRE: opts.Path is non-empty
// POST: the file is not touched until the first Log call
func New(opts Options) *Logger {
	size := opts.MaxSizeMB
	if size <= 0 {
		size = unboundedMB
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Logger{
		out: &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    size,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			LocalTime:  true,
		},
		now: now,
	}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{}
}

// Log appends one line. Errors are swallowed.
func (l *Logger) Log(message string) {
	if l == nil || l.out == nil {
		return
	}
	line := "[" + l.now().Format(TimestampLayout) + "] " + message + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line)
}

// Logf formats and appends one line.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// Close releases the file handle. Later Log calls reopen it.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}
