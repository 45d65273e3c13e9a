// File: statistics.go
// Title: Series Statistics
// Description: Mean, median, mode and range over the numeric members of a
//              Series, built on the arithmetic core.
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
	"sort"
)

// Mean returns the arithmetic mean of the numeric members of s, or 0 when
// there are none.
func Mean(s Series) float64 {
	qualifying := make([]float64, 0, len(s))
	for _, v := range s.Filter() {
		if ExpandOne(v).IsNaN() {
			continue
		}
		qualifying = append(qualifying, v.Coerce())
	}
	if len(qualifying) == 0 {
		return 0
	}
	return sumFloats(qualifying) / float64(len(qualifying))
}

// Median returns the element at index n/2 of the sorted numeric members.
// For an even count that is the upper of the two middle elements; there
// is no interpolation. An empty series yields NaN.
func Median(s Series) float64 {
	xs := s.Floats()
	if len(xs) == 0 {
		return math.NaN()
	}
	sort.Float64s(xs)
	return xs[len(xs)/2]
}

// Mode returns every value that occurs most often, in ascending order.
// Callers should treat the result as a set. An empty series yields an
// empty slice.
func Mode(s Series) []float64 {
	counts := make(map[float64]int)
	best := 0
	for _, x := range s.Floats() {
		counts[x]++
		if counts[x] > best {
			best = counts[x]
		}
	}

	modes := make([]float64, 0, len(counts))
	for x, n := range counts {
		if n == best {
			modes = append(modes, x)
		}
	}
	sort.Float64s(modes)
	return modes
}

// Range returns max - min of the numeric members, computed through Sum.
// Fewer than two members yield 0.
func Range(s Series) float64 {
	xs := s.Floats()
	if len(xs) < 2 {
		return 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return sumFloats([]float64{hi, -lo})
}
