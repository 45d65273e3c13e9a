// File: series.go
// Title: Series Construction and Filtering
// Description: Series is the ordered operand list of every reduction.
//              NewSeries resolves the two calling conventions (positional
//              values or one slice) so the arithmetic only sees a Series.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package mathx

import (
	"reflect"
)

// Series is an ordered sequence of operands
type Series []Value

// NewSeries builds a Series from positional arguments. When the first
// argument is itself a slice or array it is taken as the whole series and
// any further arguments are ignored.
func NewSeries(args ...interface{}) Series {
	if len(args) == 0 {
		return Series{}
	}

	switch first := args[0].(type) {
	case Series:
		return append(Series(nil), first...)
	case []Value:
		return append(Series(nil), first...)
	case []float64:
		s := make(Series, len(first))
		for i, f := range first {
			s[i] = Number(f)
		}
		return s
	case []interface{}:
		return fromSlice(first)
	}

	if rv := reflect.ValueOf(args[0]); rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		s := make(Series, rv.Len())
		for i := range s {
			s[i] = Of(rv.Index(i).Interface())
		}
		return s
	}

	return fromSlice(args)
}

// Floats64 builds a Series of native numbers
func Floats64(fs ...float64) Series {
	return NewSeries(fs)
}

func fromSlice(xs []interface{}) Series {
	s := make(Series, len(xs))
	for i, x := range xs {
		s[i] = Of(x)
	}
	return s
}

// Filter returns the numeric members of s in their original order
func (s Series) Filter() Series {
	out := make(Series, 0, len(s))
	for _, v := range s {
		if v.IsNumeric() {
			out = append(out, v)
		}
	}
	return out
}

// Floats filters s and coerces the remaining members
func (s Series) Floats() []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if v.IsNumeric() {
			out = append(out, v.Coerce())
		}
	}
	return out
}

// Values resolves the calling convention of args and returns the coerced
// numeric members, dropping everything else
func Values(args ...interface{}) []float64 {
	return NewSeries(args...).Floats()
}
