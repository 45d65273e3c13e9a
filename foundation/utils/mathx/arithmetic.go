// File: arithmetic.go
// Title: Arithmetic Core
// Description: Left-to-right folds of a filtered Series through the
//              decimal normalizer. Each step expands the accumulator and the
//              next operand, combines the scaled integers and scales back.
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

// Sum adds the numeric members of s. The empty sum is 0.
func Sum(s Series) float64 {
	return sumFloats(s.Floats())
}

// Product multiplies the numeric members of s. The empty product is 1.
func Product(s Series) float64 {
	return fold(s.Floats(), 1, true, mul)
}

// Difference subtracts every following member from the first one.
// An empty series yields 0.
func Difference(s Series) float64 {
	return fold(s.Floats(), 0, false, sub)
}

// Quotient divides the first member by every following one in turn.
// An empty series yields 1. Division by zero follows IEEE 754.
func Quotient(s Series) float64 {
	return fold(s.Floats(), 1, false, div)
}

func sumFloats(xs []float64) float64 {
	return fold(xs, 0, true, add)
}

// fold reduces xs with step. With seeded set the fold starts from seed,
// otherwise from the first element; seed is then only returned for an
// empty xs.
func fold(xs []float64, seed float64, seeded bool, step func(acc, next float64) float64) float64 {
	if len(xs) == 0 {
		return seed
	}
	acc := seed
	if !seeded {
		acc, xs = xs[0], xs[1:]
	}
	for _, x := range xs {
		acc = step(acc, x)
	}
	return acc
}

func add(x, y float64) float64 {
	p := expandFloats(x, y)
	return finiteOr((p.Left+p.Right)/p.Exponent, x+y)
}

func sub(x, y float64) float64 {
	p := expandFloats(x, y)
	return finiteOr((p.Left-p.Right)/p.Exponent, x-y)
}

func mul(x, y float64) float64 {
	p := expandFloats(x, y)
	if sq := p.Exponent * p.Exponent; !math.IsInf(sq, 0) {
		return finiteOr((p.Left*p.Right)/sq, x*y)
	}
	return finiteOr((p.Left*p.Right)/p.Exponent/p.Exponent, x*y)
}

// finiteOr returns native when the scaled computation overflowed to an
// infinity the native one does not reach
func finiteOr(scaled, native float64) float64 {
	if math.IsInf(scaled, 0) && !math.IsInf(native, 0) {
		return native
	}
	return scaled
}

// div needs no rescaling: the common exponent cancels in Left/Right
func div(x, y float64) float64 {
	p := expandFloats(x, y)
	return p.Left / p.Right
}
