// File: expand.go
// Title: Decimal Normalizer
// Description: Expand rescales two operands by the power of ten that turns
//              both into integers, so the next elementary operation runs on
//              exact integers and is scaled back afterwards. The correction
//              covers a single pairwise operation.
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
	"strconv"
	"strings"
)

// MaxSafeInteger is the largest integer n such that every integer up to n
// is exactly representable as a float64
const MaxSafeInteger = 1 << 53

// maxScaleDigits keeps 10^digits finite
const maxScaleDigits = 308

// ScaledPair holds two operands multiplied by Exponent = 10^Digits
type ScaledPair struct {
	Left     float64
	Right    float64
	Exponent float64
	Digits   int
}

// IsNaN reports whether the left operand did not survive coercion
func (p ScaledPair) IsNaN() bool {
	return math.IsNaN(p.Left)
}

// Expand coerces x and y and scales both by 10 to the larger of their
// fractional digit counts. Non-numeric operands become NaN and propagate.
func Expand(x, y Value) ScaledPair {
	return expandFloats(x.Coerce(), y.Coerce())
}

// ExpandOne scales a single operand. Right is zero.
func ExpandOne(x Value) ScaledPair {
	f := x.Coerce()
	digits := FractionDigits(f)
	exp := pow10(digits)
	left := scale(f, exp)
	if overflows(f, left) {
		return ScaledPair{Left: f, Exponent: 1}
	}
	return ScaledPair{Left: left, Exponent: exp, Digits: digits}
}

// expandFloats leaves both operands unscaled when scaling would push a
// finite operand to infinity
func expandFloats(x, y float64) ScaledPair {
	digits := FractionDigits(x)
	if d := FractionDigits(y); d > digits {
		digits = d
	}
	if digits > maxScaleDigits {
		digits = 0
	}
	exp := pow10(digits)
	left, right := scale(x, exp), scale(y, exp)
	if overflows(x, left) || overflows(y, right) {
		return ScaledPair{Left: x, Right: y, Exponent: 1}
	}
	return ScaledPair{
		Left:     left,
		Right:    right,
		Exponent: exp,
		Digits:   digits,
	}
}

func overflows(v, scaled float64) bool {
	return math.IsInf(scaled, 0) && !math.IsInf(v, 0)
}

// FractionDigits counts the digits after the decimal point in the shortest
// decimal representation of f. Integers, NaN and infinities have none.
func FractionDigits(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == math.Trunc(f) {
		return 0
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func pow10(digits int) float64 {
	if digits == 0 {
		return 1
	}
	return math.Pow10(digits)
}

// scale multiplies v by exp and snaps the product to the integer it stands
// for. x*10^n can land next to the integer (1.005*1000 is 1004.999...), and
// inside the safe range the nearest integer is the exact decimal value.
func scale(v, exp float64) float64 {
	if exp == 1 {
		return v
	}
	s := v * exp
	if math.Abs(s) <= MaxSafeInteger {
		return math.Round(s)
	}
	return s
}
