// File: benchmark_test.go
// Title: mathx Benchmarks
// Description: Benchmarks for the folds and value classification.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package mathx

import (
	"testing"
)

func BenchmarkSum(b *testing.B) {
	s := Floats64(0.1, 0.2, 0.3, 1.005, 42, 17.25)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sum(s)
	}
}

func BenchmarkProduct(b *testing.B) {
	s := Floats64(1.1, 1.2, 1.3, 1.4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Product(s)
	}
}

func BenchmarkNewSeriesMixed(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewSeries("1,234.5", 2, true, nil, 0.75)
	}
}

func BenchmarkPower(b *testing.B) {
	args := PowerArgs{Value: Number(1.01), Exponent: Number(12)}
	for i := 0; i < b.N; i++ {
		_ = Power(args)
	}
}
