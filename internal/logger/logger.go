// Package logger writes diagnostic lines to stderr when --verbose is set.
// Command results and build progress are not logging; they go through the
// CLI's writer.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	verbose atomic.Bool

	mu  sync.Mutex
	out io.Writer = os.Stderr

	// now is replaced in tests.
	now = time.Now
)

// SetVerbose turns logging on or off.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose reports whether logging is on.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput redirects log lines, which default to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

func write(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format, args...)
}

// Debug logs detail useful when tracing a build or query.
func Debug(format string, args ...any) {
	write("[DEBUG] "+format+"\n", args...)
}

// Info logs a milestone.
func Info(format string, args ...any) {
	write("[INFO] "+format+"\n", args...)
}

// Warn logs a problem that did not stop the command.
func Warn(format string, args ...any) {
	write("[WARN] "+format+"\n", args...)
}

// Section prints a blank line and a "=== name ===" header.
func Section(name string) {
	write("\n=== %s ===\n", name)
}

// Stage logs that a pipeline stage started and returns the func that
// logs its duration.
//
//	defer logger.Stage("embed")()
func Stage(name string) func() {
	start := now()
	write("[STAGE] %s started\n", name)
	return func() {
		write("[STAGE] %s finished in %s\n", name, now().Sub(start).Round(time.Millisecond))
	}
}
