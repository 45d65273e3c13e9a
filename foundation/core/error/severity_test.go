// File: severity_test.go
// Title: Severity Tests
// Description: Tests for severity levels and the code to severity mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Mapping cases for numeric and calc codes

package error

import (
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverityShouldAlert(t *testing.T) {
	if SeverityLow.ShouldAlert() || SeverityMedium.ShouldAlert() {
		t.Error("low and medium severities should not alert")
	}
	if !SeverityHigh.ShouldAlert() || !SeverityCritical.ShouldAlert() {
		t.Error("high and critical severities should alert")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if SeverityLow >= SeverityMedium || SeverityMedium >= SeverityHigh || SeverityHigh >= SeverityCritical {
		t.Error("severities are not ordered low < medium < high < critical")
	}
	if SeverityCritical.Level() != 3 {
		t.Errorf("SeverityCritical.Level() = %d, want 3", SeverityCritical.Level())
	}
}

func TestGetSeverityFromCode(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		severity Severity
	}{
		{"service unavailable", CodeServiceUnavailable, SeverityCritical},
		{"service initialization", CodeServiceInitialization, SeverityHigh},
		{"config error", CodeConfigError, SeverityHigh},
		{"contract violation", CodeContractViolation, SeverityMedium},
		{"not numeric", CodeNotNumeric, SeverityLow},
		{"negative sqrt", CodeNegativeSqrt, SeverityLow},
		{"unknown operation", CodeUnknownOperation, SeverityLow},
		{"value out of range", CodeValueOutOfRange, SeverityLow},
		{"unknown code", Code("UNKNOWN_CODE"), SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverityFromCode(tt.code); got != tt.severity {
				t.Errorf("GetSeverityFromCode(%v) = %v, want %v", tt.code, got, tt.severity)
			}
		})
	}
}
