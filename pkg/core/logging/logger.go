// ============================================================================
// exact - decimal-safe arithmetic service
// ============================================================================
//
// Package:     logging
// Description: Key/value logger facade used by servers, handlers and the CLI
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	mdwlog "github.com/msto63/exact/foundation/core/log"
)

// Logger wraps the Foundation logger with slog-style key/value arguments
type Logger struct {
	base *mdwlog.Logger
}

// Wrap turns a Foundation logger into a key/value logger
func Wrap(base *mdwlog.Logger) *Logger {
	return &Logger{base: base}
}

// Base returns the underlying Foundation logger
func (l *Logger) Base() *mdwlog.Logger {
	return l.base
}

// Name returns the service name
func (l *Logger) Name() string {
	return l.base.Name()
}

// With returns a logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{base: l.base.WithFields(toFields(keysAndValues...))}
}

// WithRequestID returns a logger that tags entries with a request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{base: l.base.WithRequestID(requestID)}
}

// WithLevel returns a logger with a different minimum level
func (l *Logger) WithLevel(level mdwlog.Level) *Logger {
	return &Logger{base: l.base.WithLevel(level)}
}

// Enabled reports whether entries at level are written
func (l *Logger) Enabled(level mdwlog.Level) bool {
	return l.base.IsLevelEnabled(level)
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.base.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.base.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.base.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.base.Error(msg, toFields(keysAndValues...))
}

// LogError logs a structured error with its code and details
func (l *Logger) LogError(err error) {
	l.base.LogError(err)
}

// toFields converts key-value pairs to mdwlog.Fields. A trailing key
// without a value and non-string keys are dropped.
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
