// File: operations.go
// Title: Operation Registry
// Description: Names and calling shapes of every exported operation, used by
//              the calc service, the command line and the interactive shell
//              to validate and describe requests.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package mathx

import (
	"sort"
	"strings"
)

// Arity describes how an operation takes its operands
type Arity int

const (
	// AritySeries operations reduce a Series
	AritySeries Arity = iota
	// ArityUnary operations convert a single Value
	ArityUnary
	// ArityPower is Power with its value and exponent operands
	ArityPower
)

// String returns the name of the arity class
func (a Arity) String() string {
	switch a {
	case AritySeries:
		return "series"
	case ArityUnary:
		return "unary"
	case ArityPower:
		return "power"
	default:
		return "unknown"
	}
}

// Operation describes one exported operation
type Operation struct {
	Name        string
	Arity       Arity
	Description string
	// ReturnsSet marks operations yielding several numbers (mode)
	ReturnsSet bool
}

var operations = []Operation{
	{Name: "sum", Arity: AritySeries, Description: "add all numeric values"},
	{Name: "difference", Arity: AritySeries, Description: "subtract the following values from the first"},
	{Name: "product", Arity: AritySeries, Description: "multiply all numeric values"},
	{Name: "quotient", Arity: AritySeries, Description: "divide the first value by the following ones"},
	{Name: "mean", Arity: AritySeries, Description: "arithmetic mean, 0 for no values"},
	{Name: "median", Arity: AritySeries, Description: "upper middle value of the sorted values"},
	{Name: "mode", Arity: AritySeries, Description: "most frequent values", ReturnsSet: true},
	{Name: "range", Arity: AritySeries, Description: "largest minus smallest value"},
	{Name: "percent", Arity: ArityUnary, Description: "value divided by 100"},
	{Name: "reciprocal", Arity: ArityUnary, Description: "1 divided by the value"},
	{Name: "square", Arity: ArityUnary, Description: "value times itself"},
	{Name: "sqrt", Arity: ArityUnary, Description: "square root, error for negative values"},
	{Name: "power", Arity: ArityPower, Description: "value raised to an exponent, default 1"},
}

// Operations returns all operations in registry order
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}

// OperationNames returns the sorted operation names
func OperationNames() []string {
	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = op.Name
	}
	sort.Strings(names)
	return names
}

// LookupOperation finds an operation by case-insensitive name
func LookupOperation(name string) (Operation, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Reduce applies a series operation by name. Mode is not a reduction and
// reports false, as do unknown names.
func Reduce(name string, s Series) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sum":
		return Sum(s), true
	case "difference":
		return Difference(s), true
	case "product":
		return Product(s), true
	case "quotient":
		return Quotient(s), true
	case "mean":
		return Mean(s), true
	case "median":
		return Median(s), true
	case "range":
		return Range(s), true
	default:
		return 0, false
	}
}

// Convert applies a unary operation by name
func Convert(name string, v Value) (Result, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "percent":
		return Percent(v), true
	case "reciprocal":
		return Reciprocal(v), true
	case "square":
		return Square(v), true
	case "sqrt":
		return Sqrt(v), true
	default:
		return Result{}, false
	}
}
