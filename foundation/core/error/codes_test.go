// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for error code functionality including validation,
//              categorization, and HTTP status mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive code tests
// - 2026-10-18 v0.2.0: Cases for numeric and calc codes

package error

import (
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeUnknown, "UNKNOWN"},
		{CodeNotNumeric, "MATHX_NOT_NUMERIC"},
		{CodeUnknownOperation, "CALC_UNKNOWN_OPERATION"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("Code.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeIsValid(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want bool
	}{
		{"numeric code", CodeNegativeSqrt, true},
		{"calc code", CodeInvalidRequest, true},
		{"unknown code", Code("INVALID_CODE"), false},
		{"empty code", Code(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsValid(); got != tt.want {
				t.Errorf("Code.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code     Code
		category string
	}{
		{CodeNotNumeric, "numeric"},
		{CodeNegativeSqrt, "numeric"},
		{CodeContractViolation, "numeric"},
		{CodeUnknownOperation, "calc"},
		{CodeServiceInitialization, "service"},
		{CodeConfigError, "configuration"},
		{CodeValueOutOfRange, "validation"},
		{CodeUnknown, "generic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.category {
				t.Errorf("Code.Category() = %v, want %v", got, tt.category)
			}
		})
	}
}

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnknownOperation, 404},
		{CodeNotFound, 404},
		{CodeInvalidRequest, 400},
		{CodeNegativeSqrt, 400},
		{CodeValueOutOfRange, 400},
		{CodeTimeout, 408},
		{CodeServiceUnavailable, 503},
		{CodeInternal, 500},
		{Code("SOMETHING_ELSE"), 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("Code.HTTPStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
