// File: convert_test.go
// Title: Conversion Helper Tests
// Description: Tests for percent, reciprocal, square, sqrt and power.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package mathx

import (
	"errors"
	"math"
	"testing"

	mdwerror "github.com/msto63/exact/foundation/core/error"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		outcome Outcome
		want    float64
	}{
		{"integer", 50, OutcomeValue, 0.5},
		{"decimal string", "12.5", OutcomeValue, 0.125},
		{"zero", 0, OutcomeValue, 0},
		{"negative", -3, OutcomeValue, -0.03},
		{"text", "abc", OutcomeExcluded, math.NaN()},
		{"missing", nil, OutcomeExcluded, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertResult(t, Percent(Of(tt.input)), tt.outcome, tt.want)
		})
	}
}

func TestPercentExcludedKeepsOriginal(t *testing.T) {
	r := Percent(String("abc"))
	if r.Interface() != "abc" {
		t.Errorf("Interface() = %v, want original operand", r.Interface())
	}
	if r.Original().Kind() != KindNumericString {
		t.Errorf("Original().Kind() = %v", r.Original().Kind())
	}
}

func TestPercentOfZeroKeepsOriginal(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"false", false},
		{"zero string", "0"},
		{"grouped zero", "0,000"},
		{"float zero", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Percent(Of(tt.input))
			if r.Outcome() != OutcomeValue || r.Float64() != 0 {
				t.Errorf("Percent(%v) = %v %v, want value 0", tt.input, r.Outcome(), r.Float64())
			}
			if !r.Unchanged() {
				t.Error("Unchanged() = false")
			}
			if r.Interface() != tt.input {
				t.Errorf("Interface() = %#v, want %#v", r.Interface(), tt.input)
			}
		})
	}

	if r := Percent(Number(50)); r.Unchanged() || r.Interface() != 0.5 {
		t.Errorf("Percent(50) = %v, unchanged %v", r.Interface(), r.Unchanged())
	}
}

func TestReciprocal(t *testing.T) {
	assertResult(t, Reciprocal(Number(4)), OutcomeValue, 0.25)
	assertResult(t, Reciprocal(Number(0)), OutcomeValue, math.Inf(1))
	assertResult(t, Reciprocal(String("0.5")), OutcomeValue, 2)
	assertResult(t, Reciprocal(Opaque(struct{}{})), OutcomeExcluded, math.NaN())
}

func TestSquare(t *testing.T) {
	assertResult(t, Square(Number(0.1)), OutcomeValue, 0.01)
	assertResult(t, Square(Number(-3)), OutcomeValue, 9)
	assertResult(t, Square(Number(1.1)), OutcomeValue, 1.21)
	assertResult(t, Square(Missing()), OutcomeExcluded, math.NaN())
}

func TestSqrt(t *testing.T) {
	assertResult(t, Sqrt(Number(9)), OutcomeValue, 3)
	assertResult(t, Sqrt(Number(0)), OutcomeValue, 0)
	assertResult(t, Sqrt(String("2.25")), OutcomeValue, 1.5)

	tests := []struct {
		name  string
		input Value
		code  mdwerror.Code
	}{
		{"negative", Number(-4), mdwerror.CodeNegativeSqrt},
		{"text", String("abc"), mdwerror.CodeNotNumeric},
		{"missing", Missing(), mdwerror.CodeNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Sqrt(tt.input)
			if r.Outcome() != OutcomeError {
				t.Fatalf("Outcome() = %v, want error", r.Outcome())
			}
			if !mdwerror.HasCode(r.Err(), tt.code) {
				t.Errorf("Err() = %v, want code %s", r.Err(), tt.code)
			}
			if !math.IsNaN(r.Float64()) {
				t.Errorf("Float64() = %v, want NaN", r.Float64())
			}
		})
	}
}

func TestPower(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		exponent interface{}
		outcome  Outcome
		want     float64
	}{
		{"decimal cube", 0.1, 3, OutcomeValue, 0.001},
		{"decimal square", 1.1, 2, OutcomeValue, 1.21},
		{"negative exponent", 2, -2, OutcomeValue, 0.25},
		{"zero exponent", 7, 0, OutcomeValue, 1},
		{"default exponent", 4, nil, OutcomeValue, 4},
		{"fractional exponent", 4, 0.5, OutcomeValue, 2},
		{"string operands", "3", "2", OutcomeValue, 9},
		{"non-numeric exponent", 2, "x", OutcomeValue, math.NaN()},
		{"non-numeric value", "abc", 2, OutcomeExcluded, math.NaN()},
		{"zero to negative", 0, -1, OutcomeValue, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Power(PowerArgs{Value: Of(tt.value), Exponent: Of(tt.exponent)})
			assertResult(t, r, tt.outcome, tt.want)
		})
	}
}

func TestPowerLargeExponentUsesNativePow(t *testing.T) {
	r := Power(PowerArgs{Value: Number(1), Exponent: Number(1e12)})
	assertResult(t, r, OutcomeValue, 1)
}

func TestPowerWithoutValuePanics(t *testing.T) {
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("Power() without a value should panic")
		}
		err, ok := rec.(error)
		if !ok {
			t.Fatalf("panic value %T is not an error", rec)
		}
		if !mdwerror.HasCode(err, mdwerror.CodeContractViolation) {
			t.Errorf("panic error = %v, want code %s", err, mdwerror.CodeContractViolation)
		}
		var e *mdwerror.Error
		if !errors.As(err, &e) || e.Operation() != "mathx.power" {
			t.Errorf("panic error operation not recorded: %v", err)
		}
	}()

	Power(PowerArgs{Exponent: Number(2)})
}

func TestResultString(t *testing.T) {
	if got := Percent(Number(50)).String(); got != "0.5" {
		t.Errorf("String() = %q", got)
	}
	if got := Percent(String("n/a")).String(); got != `"n/a"` {
		t.Errorf("String() = %q", got)
	}
	if got := Sqrt(Number(-1)).String(); got == "" || got[:6] != "error:" {
		t.Errorf("String() = %q", got)
	}
}

func assertResult(t *testing.T, r Result, outcome Outcome, want float64) {
	t.Helper()

	if r.Outcome() != outcome {
		t.Fatalf("Outcome() = %v, want %v", r.Outcome(), outcome)
	}
	if r.OK() != (outcome == OutcomeValue) {
		t.Errorf("OK() = %v", r.OK())
	}
	got := r.Float64()
	if math.IsNaN(want) {
		if !math.IsNaN(got) {
			t.Errorf("Float64() = %v, want NaN", got)
		}
		return
	}
	if got != want {
		t.Errorf("Float64() = %v, want %v", got, want)
	}
}
