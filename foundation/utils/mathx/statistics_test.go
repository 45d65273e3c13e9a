// File: statistics_test.go
// Title: Series Statistics Tests
// Description: Tests for mean, median, mode and range.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package mathx

import (
	"math"
	"reflect"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want float64
	}{
		{"tenths", []interface{}{0.1, 0.2}, 0.15},
		{"integers", []interface{}{1, 2, 3, 4}, 2.5},
		{"strings", []interface{}{"1", "2", "x"}, 1.5},
		{"booleans", []interface{}{true, false}, 0.5},
		{"empty", nil, 0},
		{"only non-numeric", []interface{}{"x", nil}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(NewSeries(tt.args...)); got != tt.want {
				t.Errorf("Mean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want float64
	}{
		{"odd", []interface{}{3, 1, 2}, 2},
		{"even takes upper middle", []interface{}{1, 2, 3, 4}, 3},
		{"single", []interface{}{0.5}, 0.5},
		{"unsorted strings", []interface{}{"10", "2", "7"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(NewSeries(tt.args...)); got != tt.want {
				t.Errorf("Median() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Median(NewSeries()); !math.IsNaN(got) {
		t.Errorf("Median() of empty series = %v, want NaN", got)
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	s := Floats64(3, 1, 2)
	Median(s)
	if s[0].Coerce() != 3 {
		t.Error("Median() must not modify the series")
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want []float64
	}{
		{"single mode", []interface{}{1, 2, 2, 3}, []float64{2}},
		{"tie", []interface{}{3, 3, 1, 1, 2}, []float64{1, 3}},
		{"all distinct", []interface{}{3, 1, 2}, []float64{1, 2, 3}},
		{"string and number agree", []interface{}{"2", 2, 1}, []float64{2}},
		{"empty", nil, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mode(NewSeries(tt.args...))
			if got == nil {
				t.Fatal("Mode() returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want float64
	}{
		{"tenths", []interface{}{0.1, 0.3}, 0.2},
		{"unordered", []interface{}{5, -2, 3}, 7},
		{"single", []interface{}{4}, 0},
		{"empty", nil, 0},
		{"equal", []interface{}{2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Range(NewSeries(tt.args...)); got != tt.want {
				t.Errorf("Range() = %v, want %v", got, tt.want)
			}
		})
	}
}
