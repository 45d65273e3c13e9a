// File: utils.go
// Title: Shared Error Handling Utilities
// Description: Provides the fluent error builder and the constructor helpers
//              used by mathx, the calc service and the configuration layer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of shared error utilities
// - 2025-07-26 v0.1.1: Enhanced OutOfRange function with "validation failed:" prefix
// - 2026-10-18 v0.2.0: Numeric and calc helpers, operation recorded on the error

package errors

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/exact/foundation/core/error"
)

// ErrorBuilder provides a fluent interface for building standardized errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	details   map[string]interface{}
	severity  mdwerror.Severity
	code      string
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:   module,
		details:  make(map[string]interface{}),
		severity: mdwerror.SeverityMedium,
	}
}

// Operation sets the operation name for the error
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause of the error
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Detail adds a detail key-value pair to the error
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Severity sets the error severity
func (eb *ErrorBuilder) Severity(severity mdwerror.Severity) *ErrorBuilder {
	eb.severity = severity
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code string) *ErrorBuilder {
	eb.code = code
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() *mdwerror.Error {
	if eb.code == "" {
		eb.code = getModuleErrorCode(eb.module, eb.operation)
	}

	if eb.message == "" {
		if eb.operation != "" {
			eb.message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
		} else {
			eb.message = fmt.Sprintf("%s operation failed", eb.module)
		}
	}

	eb.details["module"] = eb.module

	var err *mdwerror.Error
	if eb.cause != nil {
		err = mdwerror.Wrap(eb.cause, eb.message)
	} else {
		err = mdwerror.New(eb.message)
	}

	if eb.operation != "" {
		err = err.WithOperation(eb.module + "." + eb.operation)
	}

	return err.
		WithCode(mdwerror.Code(eb.code)).
		WithDetails(eb.details).
		WithSeverity(eb.severity)
}

// InvalidInput creates a standardized invalid input error
func InvalidInput(module, operation string, input interface{}, expected string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("invalid input for %s.%s", module, operation)).
		Code(CodeInvalidInput).
		Detail("input", input).
		Detail("expected", expected).
		Severity(mdwerror.SeverityLow).
		Build()
}

// OperationFailed creates a standardized operation failure error
func OperationFailed(module, operation string, cause error) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("%s.%s operation failed", module, operation)).
		Cause(cause).
		Code(getOperationErrorCode(module)).
		Severity(mdwerror.SeverityHigh).
		Build()
}

// OutOfRange creates a standardized out of range error
func OutOfRange(module, operation string, value, min, max interface{}) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("validation failed: value out of range in %s.%s", module, operation)).
		Code(CodeOutOfRange).
		Detail("value", value).
		Detail("min", min).
		Detail("max", max).
		Severity(mdwerror.SeverityLow).
		Build()
}

// ExtractDetails extracts all details from a structured error
func ExtractDetails(err error) map[string]interface{} {
	var e *mdwerror.Error
	if errors.As(err, &e) {
		return e.Details()
	}
	return nil
}

// ExtractModule extracts the module name from an error
func ExtractModule(err error) string {
	if module, ok := ExtractDetails(err)["module"].(string); ok {
		return module
	}
	return ""
}

// MathxNotNumeric reports an operand that does not coerce to a number
func MathxNotNumeric(operation string, input interface{}) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation(operation).
		Messagef("%s requires a numeric operand", operation).
		Code(CodeMathxNotNumeric).
		Detail("input", input).
		Severity(mdwerror.SeverityLow).
		Build()
}

// MathxNegativeSqrt reports a square root of a negative number
func MathxNegativeSqrt(input float64) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("sqrt").
		Message("square root of a negative number").
		Code(CodeMathxNegativeSqrt).
		Detail("input", input).
		Severity(mdwerror.SeverityLow).
		Build()
}

// MathxContractViolation reports a call that breaks an operation's input contract
func MathxContractViolation(operation, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation(operation).
		Messagef("%s: %s", operation, reason).
		Code(CodeMathxContractViolation).
		Detail("reason", reason).
		Severity(mdwerror.SeverityMedium).
		Build()
}

// CalcUnknownOperation reports a request for an operation the registry lacks
func CalcUnknownOperation(name string) *mdwerror.Error {
	return NewErrorBuilder(ModuleCalc).
		Operation("lookup").
		Messagef("unknown operation %q", name).
		Code(CodeCalcUnknownOperation).
		Detail("name", name).
		Severity(mdwerror.SeverityLow).
		Build()
}

// CalcInvalidRequest reports a request that cannot be decoded or evaluated
func CalcInvalidRequest(operation, reason string, cause error) *mdwerror.Error {
	b := NewErrorBuilder(ModuleCalc).
		Operation(operation).
		Messagef("invalid request: %s", reason).
		Code(CodeCalcInvalidRequest).
		Detail("reason", reason).
		Severity(mdwerror.SeverityLow)
	if cause != nil {
		b = b.Cause(cause)
	}
	return b.Build()
}

// ConfigInvalid reports a configuration value that fails validation
func ConfigInvalid(key string, value interface{}, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleConfig).
		Operation("validate").
		Messagef("invalid configuration value for %s: %s", key, reason).
		Code(CodeConfigInvalid).
		Detail("key", key).
		Detail("value", value).
		Severity(mdwerror.SeverityHigh).
		Build()
}
