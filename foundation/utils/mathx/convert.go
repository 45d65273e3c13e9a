// File: convert.go
// Title: Conversion Helpers
// Description: Unary conversions on a single operand. Non-numeric operands
//              pass through as OutcomeExcluded; Sqrt reports its domain
//              errors as OutcomeError results.
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

	mdwerrors "github.com/msto63/exact/foundation/core/errors"
)

// maxIntegralExponent bounds exponents evaluated by repeated multiplication
const maxIntegralExponent = 1 << 32

// Percent divides v by 100. Non-numeric and zero operands are returned
// unchanged; a zero operand is still a value result of 0.
func Percent(v Value) Result {
	if !v.IsNumeric() {
		return excludedResult(v)
	}
	c := v.Coerce()
	if c == 0 {
		return unchangedResult(v)
	}
	return valueResult(div(c, 100), v)
}

// Reciprocal returns 1/v using native exponentiation, so 0 maps to +Inf
func Reciprocal(v Value) Result {
	if !v.IsNumeric() {
		return excludedResult(v)
	}
	return valueResult(math.Pow(v.Coerce(), -1), v)
}

// Square returns v*v through the decimal normalizer
func Square(v Value) Result {
	if !v.IsNumeric() {
		return excludedResult(v)
	}
	c := v.Coerce()
	return valueResult(mul(c, c), v)
}

// Sqrt returns the square root of v, or an error result when v is not
// numeric or negative
func Sqrt(v Value) Result {
	if !v.IsNumeric() {
		return errorResult(v, mdwerrors.MathxNotNumeric("sqrt", v.Raw()))
	}
	c := v.Coerce()
	if c < 0 {
		return errorResult(v, mdwerrors.MathxNegativeSqrt(c))
	}
	return valueResult(math.Sqrt(c), v)
}

// PowerArgs are the operands of Power. Value is required; a missing
// Exponent means 1.
type PowerArgs struct {
	Value    Value
	Exponent Value
}

// Power raises args.Value to args.Exponent. Integral exponents are folded
// through the decimal normalizer, so Power(0.1, 3) is 0.001; fractional
// exponents use math.Pow. A non-numeric exponent propagates NaN.
//
// Power panics with a MATHX_CONTRACT_VIOLATION error when args.Value is
// missing.
func Power(args PowerArgs) Result {
	if args.Value.IsMissing() {
		panic(mdwerrors.MathxContractViolation("power", "value is required"))
	}
	if !args.Value.IsNumeric() {
		return excludedResult(args.Value)
	}

	base := args.Value.Coerce()
	exp := 1.0
	if !args.Exponent.IsMissing() {
		exp = args.Exponent.Coerce()
	}

	return valueResult(pow(base, exp), args.Value)
}

func pow(base, exp float64) float64 {
	if math.IsNaN(exp) || math.IsInf(exp, 0) || exp != math.Trunc(exp) || math.Abs(exp) > maxIntegralExponent {
		return math.Pow(base, exp)
	}

	n := uint64(math.Abs(exp))
	result, b := 1.0, base
	for n > 0 {
		if n&1 == 1 {
			result = mul(result, b)
		}
		n >>= 1
		if n > 0 {
			b = mul(b, b)
		}
	}

	if exp < 0 {
		return div(1, result)
	}
	return result
}
