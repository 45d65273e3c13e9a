// ============================================================================
// exact - decimal-safe arithmetic service
// ============================================================================
//
// Package:     logging
// Description: Factory functions for service loggers built on Foundation logging
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"

	mdwlog "github.com/msto63/exact/foundation/core/log"
)

var (
	defaultsMu sync.RWMutex
	defaults   = LoggerConfig{Level: "info", Format: "json"}
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: json, text, logfmt or console (default: json)
	Format string

	// Output defaults to stderr
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// Configure sets the level, format and output used by New and
// DefaultLoggerConfig. The CLI calls it once after reading its flags.
func Configure(level, format string, output io.Writer) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = LoggerConfig{Level: level, Format: format, Output: output}
}

// DefaultLoggerConfig returns the configured defaults for a service
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	cfg := defaults
	cfg.ServiceName = serviceName
	return cfg
}

// NewLogger creates a Foundation logger. Unknown levels and formats fall
// back to info and json.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level, _ := mdwlog.ParseLevel(cfg.Level)
	format, _ := mdwlog.ParseFormat(cfg.Format)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: true,
		// Skip the key/value facade
		CallerSkipFrames: 1,
	})
}

// New creates a key/value logger for a service with the configured defaults
func New(name string) *Logger {
	return Wrap(NewLogger(DefaultLoggerConfig(name)))
}

// NewWithConfig creates a key/value logger from an explicit configuration
func NewWithConfig(cfg LoggerConfig) *Logger {
	return Wrap(NewLogger(cfg))
}

// Nop returns a logger that drops every entry
func Nop() *Logger {
	return Wrap(mdwlog.Discard())
}
