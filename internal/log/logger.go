// Package log provides structured logging over log/slog.
package log

import (
	"io"
	"log/slog"
	"strings"
)

// Format is the log output format.
type Format string

// Format values.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names report ok=false.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "pretty", "":
		return FormatText, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return FormatText, false
	}
}

// Logger wraps slog.Logger with convenience methods.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing to w in the given format and level.
func New(w io.Writer, format Format, level string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{logger: slog.New(handler)}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level names a known level.
func ValidLevel(level string) bool {
	switch strings.ToUpper(level) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return true
	}
	return false
}

// With returns a new Logger with additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// SetDefault makes l the slog default, so that log/slog calls outside this
// package go to the same handler.
func SetDefault(l *Logger) {
	slog.SetDefault(l.logger)
}
