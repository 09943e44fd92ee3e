package flowbuf

import (
	"log/slog"
)

// Logger defines an interface for logging at different severity levels.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, args ...any)
	// Info logs a message at info level.
	Info(msg string, args ...any)
	// Warn logs a message at warning level.
	Warn(msg string, args ...any)
	// Error logs a message at error level.
	Error(msg string, args ...any)
}

var logger Logger = slog.Default()

// SetDefaultLogger sets the default logger for all streams.
// slog.Default() is used by default. May be overridden per-stream
// using WithLogger.
func SetDefaultLogger(l Logger) {
	logger = l
}
