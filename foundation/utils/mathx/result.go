// File: result.go
// Title: Conversion Results
// Description: Result is returned by the unary conversions. Its Outcome tag
//              separates a computed number from a passed-through operand and
//              from a domain error, so callers branch on the tag instead of
//              inspecting types.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package mathx

import (
	"math"
)

// Outcome tags a Result
type Outcome int

const (
	// OutcomeValue carries a computed number
	OutcomeValue Outcome = iota
	// OutcomeExcluded means the operand was not numeric and is returned unchanged
	OutcomeExcluded
	// OutcomeError carries a domain error
	OutcomeError
)

// String returns the wire name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeValue:
		return "value"
	case OutcomeExcluded:
		return "excluded"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a unary conversion
type Result struct {
	outcome  Outcome
	value    float64
	original Value
	err      error

	// unchanged marks a value result that stands for its operand
	unchanged bool
}

func valueResult(f float64, original Value) Result {
	return Result{outcome: OutcomeValue, value: f, original: original}
}

// unchangedResult is a value result whose Interface is the operand itself
func unchangedResult(original Value) Result {
	return Result{outcome: OutcomeValue, value: original.Coerce(), original: original, unchanged: true}
}

func excludedResult(original Value) Result {
	return Result{outcome: OutcomeExcluded, value: math.NaN(), original: original}
}

func errorResult(original Value, err error) Result {
	return Result{outcome: OutcomeError, value: math.NaN(), original: original, err: err}
}

// Outcome returns the tag of r
func (r Result) Outcome() Outcome {
	return r.outcome
}

// Float64 returns the computed number, or NaN when r holds no value
func (r Result) Float64() float64 {
	return r.value
}

// Original returns the operand the conversion was applied to
func (r Result) Original() Value {
	return r.original
}

// Err returns the domain error of an OutcomeError result
func (r Result) Err() error {
	return r.err
}

// OK reports whether r carries a computed number
func (r Result) OK() bool {
	return r.outcome == OutcomeValue
}

// Unchanged reports whether the conversion returned its operand as is,
// e.g. Percent of zero
func (r Result) Unchanged() bool {
	return r.unchanged || r.outcome == OutcomeExcluded
}

// Interface returns the number for a value result and the original Go
// value otherwise, matching the loosely-typed contract of the conversions
func (r Result) Interface() interface{} {
	switch {
	case r.unchanged:
		return r.original.Raw()
	case r.outcome == OutcomeValue:
		return r.value
	case r.outcome == OutcomeError:
		return r.err
	default:
		return r.original.Raw()
	}
}

// String renders r for display
func (r Result) String() string {
	switch r.outcome {
	case OutcomeValue:
		return FormatFloat(r.value)
	case OutcomeError:
		return "error: " + r.err.Error()
	default:
		return r.original.String()
	}
}
