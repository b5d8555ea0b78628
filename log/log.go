// Package log provides structured logging for the ABI codec tooling. It
// wraps Go's log/slog with per-module child loggers and the verbosity scale
// used by the command-line tools.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Output formats accepted by NewWithFormat.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Logger wraps slog.Logger with module context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions and by library code that was not handed a logger.
var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(slog.LevelInfo))
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	return NewWithHandler(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// NewWithFormat creates a Logger writing to w in the named format
// (FormatJSON or FormatText).
func NewWithFormat(w io.Writer, level slog.Level, format string) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		return NewWithHandler(slog.NewJSONHandler(w, opts)), nil
	case FormatText:
		return NewWithHandler(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// VerbosityToLevel maps the 0-5 verbosity scale of the command-line tools
// to a slog level. Levels 0 and 1 only show errors; 5 and above enable
// everything.
func VerbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 1:
		return slog.LevelError
	case verbosity == 2:
		return slog.LevelWarn
	case verbosity == 3:
		return slog.LevelInfo
	case verbosity == 4:
		return slog.LevelDebug
	default:
		return slog.LevelDebug - 4
	}
}

// SetDefault replaces the package-level default logger. A nil logger is
// ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// Module returns a child logger with an additional "module" attribute.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { Default().Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { Default().Error(msg, args...) }
