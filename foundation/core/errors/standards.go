// File: standards.go
// Title: Error Standards for the exact Modules
// Description: Module identifiers and error code lookups shared by the mathx
//              library, the calc service and the configuration layer, so that
//              every component reports failures with the same vocabulary.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2025-01-25 v0.1.1: Fixed import and type reference issues
// - 2026-10-18 v0.2.0: Reduced to the mathx, calc and config modules

package errors

import (
	"strings"

	mdwerror "github.com/msto63/exact/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleMathx  = "mathx"
	ModuleCalc   = "calc"
	ModuleConfig = "config"
)

// Standardized error codes. The numeric and calc codes mirror the
// definitions of the core error package so callers can compare strings.
const (
	CodeInvalidInput    = string(mdwerror.CodeInvalidInput)
	CodeInvalidFormat   = string(mdwerror.CodeInvalidFormat)
	CodeOutOfRange      = string(mdwerror.CodeValueOutOfRange)
	CodeNotFound        = string(mdwerror.CodeNotFound)
	CodeOperationFailed = "OPERATION_FAILED"

	CodeMathxNotNumeric        = string(mdwerror.CodeNotNumeric)
	CodeMathxNegativeSqrt      = string(mdwerror.CodeNegativeSqrt)
	CodeMathxContractViolation = string(mdwerror.CodeContractViolation)
	CodeMathxOperationFailed   = "MATHX_OPERATION_FAILED"

	CodeCalcUnknownOperation = string(mdwerror.CodeUnknownOperation)
	CodeCalcInvalidRequest   = string(mdwerror.CodeInvalidRequest)
	CodeCalcOperationFailed  = "CALC_OPERATION_FAILED"

	CodeConfigInvalid = string(mdwerror.CodeInvalidConfig)
	CodeConfigMissing = string(mdwerror.CodeMissingConfig)
	CodeConfigError   = string(mdwerror.CodeConfigError)
)

// IsModuleError checks if an error belongs to a specific module
func IsModuleError(err error, module string) bool {
	return ExtractModule(err) == module
}

func getModuleErrorCode(module, operation string) string {
	switch module {
	case ModuleMathx:
		return getMathxErrorCode(operation)
	case ModuleCalc:
		return getCalcErrorCode(operation)
	case ModuleConfig:
		return getConfigErrorCode(operation)
	default:
		return CodeOperationFailed
	}
}

func getMathxErrorCode(operation string) string {
	switch {
	case strings.Contains(operation, "sqrt"):
		return CodeMathxNegativeSqrt
	case strings.Contains(operation, "power"):
		return CodeMathxContractViolation
	case strings.Contains(operation, "parse") || strings.Contains(operation, "coerce"):
		return CodeMathxNotNumeric
	default:
		return CodeMathxOperationFailed
	}
}

func getCalcErrorCode(operation string) string {
	switch {
	case strings.Contains(operation, "lookup") || strings.Contains(operation, "resolve"):
		return CodeCalcUnknownOperation
	case strings.Contains(operation, "decode") || strings.Contains(operation, "parse"):
		return CodeCalcInvalidRequest
	default:
		return CodeCalcOperationFailed
	}
}

func getConfigErrorCode(operation string) string {
	switch {
	case strings.Contains(operation, "load") || strings.Contains(operation, "read"):
		return CodeConfigMissing
	case strings.Contains(operation, "validate"):
		return CodeConfigInvalid
	default:
		return CodeConfigError
	}
}

func getOperationErrorCode(module string) string {
	switch module {
	case ModuleMathx:
		return CodeMathxOperationFailed
	case ModuleCalc:
		return CodeCalcOperationFailed
	case ModuleConfig:
		return CodeConfigError
	default:
		return CodeOperationFailed
	}
}
