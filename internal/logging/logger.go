// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default logger.
var (
	defaultMu     sync.RWMutex
	defaultLogger = New("info")
)

//nolint:gochecknoglobals // Read-only lookup table.
var levels = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// ParseLevel maps a level name to a log level. Names are case
// insensitive; unknown names map to info and report false.
func ParseLevel(level string) (log.Level, bool) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return log.InfoLevel, false
	}
	return lvl, true
}

// New creates a diagnostics logger on stderr at the named level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a diagnostics logger on w at the named level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	lvl, _ := ParseLevel(level)
	logger.SetLevel(lvl)
	return logger
}

// NewInteractive creates an info-level logger on w for commands whose
// log lines are their primary output, such as init and version.
func NewInteractive(w io.Writer) *log.Logger {
	return NewWithWriter(w, "info")
}

// Discard returns a logger that drops everything. Library types use it
// until a caller supplies a logger.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// SetLevel changes the level of the process-wide logger in place.
// Loggers derived with With before the call keep their old level.
func SetLevel(level string) {
	lvl, _ := ParseLevel(level)
	Default().SetLevel(lvl)
}
