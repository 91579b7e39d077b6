// Package logger provides verbose logging for the aptline CLI.
// When verbose mode is enabled via the --verbose flag or log.verbose in
// config, messages are written to stderr to show how lines are parsed,
// rendered and stored. Output is silent otherwise.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  log.DebugLevel,
		Prefix: "aptline",
	})
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger(w)
}

// Output returns the current log writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// active returns the logger when verbose mode is on, nil otherwise.
func active() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return nil
	}
	return base
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	if l := active(); l != nil {
		l.Debugf(format, args...)
	}
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	if l := active(); l != nil {
		l.Info("=== " + name + " ===")
	}
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	if l := active(); l != nil {
		l.Infof(format, args...)
	}
}

// Warn logs a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	if l := active(); l != nil {
		l.Warnf(format, args...)
	}
}
