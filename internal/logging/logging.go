// Package logging provides a leveled printf-style logger on top of log/slog,
// rendered by tint.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// slogLevel maps a Level onto slog's scale.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger. It is safe for concurrent use.
type Logger struct {
	mu     sync.RWMutex
	level  slog.LevelVar
	logger *slog.Logger
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{}
	l.level.Set(level.slogLevel())
	l.SetOutput(os.Stderr)
	return l
}

// SetOutput sets the log output destination. Colour is only used when w is
// a terminal.
func (l *Logger) SetOutput(w io.Writer) {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	h := tint.NewHandler(w, &tint.Options{
		Level:      &l.level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(h)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slogLevel())
}

// Enabled reports whether messages at level are emitted.
func (l *Logger) Enabled(level Level) bool {
	return level.slogLevel() >= l.level.Level()
}

// Slog returns the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.Slog().Log(context.Background(), level.slogLevel(), fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Timed logs at debug level how long fn took.
func (l *Logger) Timed(what string, fn func() error) error {
	start := time.Now()
	err := fn()
	l.Debug("%s took %v", what, time.Since(start).Round(time.Millisecond))
	return err
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := &Logger{}
	l.level.Set(LevelError.slogLevel() + 4)
	l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return l
}
