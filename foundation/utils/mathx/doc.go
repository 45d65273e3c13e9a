// File: doc.go
// Title: Package Documentation for mathx
// Description: Package documentation for the decimal-safe arithmetic library.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic and business functions
// - 2025-01-26 v0.2.0: Enhanced documentation with comprehensive structure and examples
// - 2026-10-18 v0.3.0: Replaced big.Rat decimals with float64 pairwise normalization

// Package mathx performs decimal-safe arithmetic on loosely-typed operands,
// so that 0.1 + 0.2 yields 0.3 rather than 0.30000000000000004.
//
// # Operands
//
// Every operand is a Value: a number, a numeric string such as " 1,234.5 ",
// a boolean (true is 1), a Valuer that converts itself, or a missing or
// opaque value. Of classifies arbitrary Go values and NewSeries builds a
// Series from positional arguments or from a single slice:
//
//	s := mathx.NewSeries(0.1, "0.2", true)
//	s = mathx.NewSeries([]any{1, 2, 3}, 99) // 99 is ignored
//
// Non-numeric members of a Series are dropped before any reduction.
//
// # Normalization
//
// Expand scales two operands by 10^n, n being the larger fractional digit
// count, which turns both into exact integers. Sum, Difference, Product
// and Quotient fold a Series left to right, expanding the accumulator and
// the next operand at each step. The correction holds for one pairwise
// step; long folds can still accumulate error, and values beyond 2^53
// after scaling are not corrected.
//
// # Conversions
//
// Percent, Reciprocal, Square, Sqrt and Power return a Result. Its Outcome
// tells a computed number (OutcomeValue) from a passed-through non-numeric
// operand (OutcomeExcluded) and from a domain error (OutcomeError, only
// Sqrt). Power panics when its Value is missing; nothing else panics.
//
// NaN and infinities produced by native arithmetic propagate unchanged.
// All functions are pure and safe for concurrent use.
package mathx
