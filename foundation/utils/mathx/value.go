// File: value.go
// Title: Numeric Values and Coercion
// Description: Defines Value, the tagged union of every input kind the
//              arithmetic accepts, and the per-kind conversion to float64.
//              Of is the adapter that classifies arbitrary Go values at the
//              call boundary.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package mathx

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	// KindMissing is the zero Value: nil, absent or undefined input
	KindMissing Kind = iota
	KindNumber
	KindNumericString
	KindBoolean
	// KindBoxed wraps a Valuer
	KindBoxed
	// KindOpaque holds containers and objects without a numeric conversion
	KindOpaque
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindNumericString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindBoxed:
		return "boxed"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Valuer is implemented by types that know their own numeric value
type Valuer interface {
	Float64() float64
}

// Value is a single loosely-typed operand. The zero Value is Missing.
type Value struct {
	kind  Kind
	num   float64
	str   string
	flag  bool
	boxed Valuer
	raw   interface{}
}

// Missing returns the absent value
func Missing() Value {
	return Value{}
}

// Number wraps a native float
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, raw: f}
}

// String wraps text that may hold a number, e.g. " 1,234.5 "
func String(s string) Value {
	return Value{kind: KindNumericString, str: s, raw: s}
}

// Bool wraps a boolean; true counts as 1 and false as 0
func Bool(b bool) Value {
	return Value{kind: KindBoolean, flag: b, raw: b}
}

// Boxed wraps a Valuer. A nil Valuer yields Missing.
func Boxed(v Valuer) Value {
	if v == nil {
		return Missing()
	}
	return Value{kind: KindBoxed, boxed: v, raw: v}
}

// Opaque wraps a value that has no numeric meaning
func Opaque(x interface{}) Value {
	return Value{kind: KindOpaque, raw: x}
}

var valuerType = reflect.TypeOf((*Valuer)(nil)).Elem()

// Of classifies an arbitrary Go value. Pointers are followed, named types
// are classified by their underlying kind, and anything else is Opaque.
func Of(x interface{}) Value {
	switch v := x.(type) {
	case nil:
		return Missing()
	case Value:
		return v
	case Valuer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return Missing()
		}
		return Boxed(v)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case string:
		return String(v)
	case json.Number:
		return String(string(v))
	case bool:
		return Bool(v)
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return withRaw(Number(rv.Float()), x)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return withRaw(Number(float64(rv.Int())), x)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return withRaw(Number(float64(rv.Uint())), x)
	case reflect.String:
		return withRaw(String(rv.String()), x)
	case reflect.Bool:
		return withRaw(Bool(rv.Bool()), x)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Missing()
		}
		if rv.Type().Implements(valuerType) {
			return Boxed(rv.Interface().(Valuer))
		}
		return withRaw(Of(rv.Elem().Interface()), x)
	default:
		return Opaque(x)
	}
}

func withRaw(v Value, raw interface{}) Value {
	if v.kind != KindMissing {
		v.raw = raw
	}
	return v
}

// Kind returns the variant of v
func (v Value) Kind() Kind {
	return v.kind
}

// Raw returns the Go value v was built from
func (v Value) Raw() interface{} {
	return v.raw
}

// IsMissing reports whether v is absent
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Coerce converts v to a float64. Values without a numeric meaning
// convert to NaN.
func (v Value) Coerce() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindNumericString:
		return parseNumeric(v.str)
	case KindBoolean:
		if v.flag {
			return 1
		}
		return 0
	case KindBoxed:
		return v.boxed.Float64()
	default:
		return math.NaN()
	}
}

// IsNumeric reports whether v converts to a usable number. NaN, missing
// values, empty or unparsable text and opaque values are not numeric.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindMissing, KindOpaque:
		return false
	default:
		return !math.IsNaN(v.Coerce())
	}
}

// String renders v for display
func (v Value) String() string {
	switch v.kind {
	case KindMissing:
		return "<missing>"
	case KindNumber:
		return FormatFloat(v.num)
	case KindNumericString:
		return strconv.Quote(v.str)
	case KindBoolean:
		return strconv.FormatBool(v.flag)
	case KindBoxed:
		return FormatFloat(v.boxed.Float64())
	default:
		return "<opaque>"
	}
}

// IsNumeric classifies x with Of and reports whether it is numeric
func IsNumeric(x interface{}) bool {
	return Of(x).IsNumeric()
}

// NormalizeNumeric strips thousands separators and surrounding whitespace
func NormalizeNumeric(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// parseNumeric converts text to a float. The literal forms "NaN", "null",
// "undefined" and "" as well as unparsable text yield NaN. Overflowing
// literals yield the signed infinity.
func parseNumeric(s string) float64 {
	s = NormalizeNumeric(s)
	switch s {
	case "", "NaN", "null", "undefined":
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// FormatFloat renders f in its shortest form. Magnitudes from 1e-6 up to
// 1e21 print in plain decimal notation, everything else with an exponent.
func FormatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
