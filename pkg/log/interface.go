// Package log provides a structured logging interface for feature-selection runs.
//
// This package defines a minimal, slog-compatible logging interface that allows for
// flexible implementation switching while providing search-specific structured logging
// capabilities. The default implementation is backed by zerolog (see zerolog.go);
// tests use TestLogger to capture and inspect records.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.EngineKey, log.EngineForward,
//	)
//	logger.Info("search finished",
//	    log.SamplesKey, 200,
//	    log.FeaturesKey, 10,
//	    log.SelectedKey, 4,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. Error additionally accepts
// an error value as its first field; implementations attach the error and its
// stack trace when they can extract one.
type Logger interface {
	// Debug logs a debug-level message. Engines emit one Debug record per
	// search round or annealing iteration.
	Debug(msg string, fields ...any)

	// Info logs an info-level message, e.g. the final selection of a search.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message.
	Warn(msg string, fields ...any)

	// Error logs an error-level message.
	//
	// Example:
	//   logger.Error("search failed",
	//       err,
	//       log.EngineKey, log.EngineAnnealing,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Engines use it to skip building per-iteration fields that would be dropped.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
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

// LoggerProvider defines an interface for creating and configuring loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
