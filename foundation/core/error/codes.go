// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across the exact library, service and gateways. These codes drive
//              the result tags of the mathx package and the status mapping of the
//              gRPC and HTTP surfaces.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Reduced to the codes used by the decimal calculator,
//                       added numeric-domain and calc service codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"

	// Numeric domain
	CodeNotNumeric        Code = "MATHX_NOT_NUMERIC"
	CodeNegativeSqrt      Code = "MATHX_NEGATIVE_SQRT"
	CodeContractViolation Code = "MATHX_CONTRACT_VIOLATION"

	// Calc service
	CodeUnknownOperation Code = "CALC_UNKNOWN_OPERATION"
	CodeInvalidRequest   Code = "CALC_INVALID_REQUEST"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeServiceUnavailable, CodeServiceInitialization,
		CodeNotNumeric, CodeNegativeSqrt, CodeContractViolation,
		CodeUnknownOperation, CodeInvalidRequest,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeValidationFailed, CodeInvalidFormat, CodeValueOutOfRange:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeNotNumeric, CodeNegativeSqrt, CodeContractViolation:
		return "numeric"
	case CodeUnknownOperation, CodeInvalidRequest:
		return "calc"
	case CodeServiceUnavailable, CodeServiceInitialization:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeValidationFailed, CodeInvalidFormat, CodeValueOutOfRange:
		return "validation"
	default:
		return "generic"
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeUnknownOperation:
		return 404
	case CodeInvalidInput, CodeInvalidRequest, CodeValidationFailed, CodeInvalidFormat,
		CodeValueOutOfRange, CodeNotNumeric, CodeNegativeSqrt, CodeContractViolation:
		return 400
	case CodeTimeout:
		return 408
	case CodeServiceUnavailable:
		return 503
	default:
		return 500
	}
}
