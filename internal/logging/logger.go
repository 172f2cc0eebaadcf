// Package logging provides a structured logging wrapper around Go's log/slog
// with file rotation and timing helpers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with convenience methods for fluxtree
type Logger struct {
	logger  *slog.Logger
	enabled bool
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	// FormatText outputs human-readable text logs
	FormatText LogFormat = "text"
	// FormatJSON outputs structured JSON logs
	FormatJSON LogFormat = "json"
)

// StderrPath routes logs to stderr instead of a file (used by headless commands)
const StderrPath = "-"

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the log file; "" disables logging, "-" logs to stderr
	FilePath   string
	Level      slog.Level
	Format     LogFormat
	MaxSizeMB  int
	MaxBackups int
}

var (
	globalLogger atomic.Pointer[Logger]
	noopLogger   = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
)

// Init initializes the global logger. The TUI owns the terminal, so logs
// only go to a file unless FilePath is "-".
func Init(config Config) error {
	if config.FilePath == "" {
		globalLogger.Store(noopLogger)
		return nil
	}

	var writer io.Writer
	if config.FilePath == StderrPath {
		writer = os.Stderr
	} else {
		writer = &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			Compress:   true,
		}
	}

	globalLogger.Store(New(writer, config.Level, config.Format))
	return nil
}

// New builds a standalone logger writing to w
func New(w io.Writer, level slog.Level, format LogFormat) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{logger: slog.New(handler), enabled: true}
}

// Get returns the global logger, or a noop logger before Init
func Get() *Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	return noopLogger
}

// Component returns the global logger tagged with a component name
func Component(name string) *Logger {
	return Get().With("component", name)
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a new Logger with the given key-value pairs added as context
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), enabled: l.enabled}
}

// IsEnabled returns true if logging is enabled (not noop)
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// Package-level convenience functions

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// IsEnabled returns true if logging is enabled globally
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a string to slog.Level (default info)
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to LogFormat (default text)
func ParseFormat(format string) LogFormat {
	if format == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// Shutdown resets the global logger to noop
func Shutdown() {
	globalLogger.Store(noopLogger)
}
