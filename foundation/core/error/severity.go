// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that loggers and servers
//              can pick an appropriate log level and status for a failure.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for numeric and calc codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a caller mistake that doesn't affect the service,
	// e.g. a non-numeric operand or an unknown operation name
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects a single request
	SeverityMedium

	// SeverityHigh indicates a failure of a component such as the listener
	// or the configuration
	SeverityHigh

	// SeverityCritical indicates the service cannot run at all
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable:
		return SeverityCritical

	case CodeServiceInitialization, CodeConfigError, CodeInvalidConfig, CodeInternal:
		return SeverityHigh

	// A missing Power value is a programming error, not bad data
	case CodeContractViolation, CodeTimeout, CodeMissingConfig:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeInvalidFormat,
		CodeValueOutOfRange, CodeNotNumeric, CodeNegativeSqrt,
		CodeUnknownOperation, CodeInvalidRequest:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
