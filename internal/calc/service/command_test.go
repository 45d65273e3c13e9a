package service

import (
	"reflect"
	"testing"

	mdwerror "github.com/msto63/exact/foundation/core/error"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Request
	}{
		{"series", "sum 0.1 0.2", Request{Operation: "sum", Values: []interface{}{"0.1", "0.2"}}},
		{"upper case", "  MEAN 1   2 ", Request{Operation: "mean", Values: []interface{}{"1", "2"}}},
		{"no operands", "product", Request{Operation: "product", Values: []interface{}{}}},
		{"literals", "sum true false null 3", Request{Operation: "sum", Values: []interface{}{true, false, nil, "3"}}},
		{"unary", "sqrt 16", Request{Operation: "sqrt", Value: "16"}},
		{"power", "power 2 10", Request{Operation: "power", Value: "2", Exponent: "10"}},
		{"power default exponent", "power 2", Request{Operation: "power", Value: "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if err != nil {
				t.Fatalf("ParseCommand(%q) error = %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestNewRequestKeepsTokens(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		tokens    []string
		want      Request
	}{
		{"padded operand", "sum", []string{" 1,234.5 ", "0.5"}, Request{Operation: "sum", Values: []interface{}{" 1,234.5 ", "0.5"}}},
		{"inner space", "mean", []string{"1 000"}, Request{Operation: "mean", Values: []interface{}{"1 000"}}},
		{"padded literal", "sum", []string{" true ", " _ "}, Request{Operation: "sum", Values: []interface{}{true, nil}}},
		{"unary", "Sqrt", []string{" 16 "}, Request{Operation: "sqrt", Value: " 16 "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRequest(tt.operation, tt.tokens)
			if err != nil {
				t.Fatalf("NewRequest() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := NewRequest("sqrt", []string{"1 2"}); err != nil {
		t.Errorf("one token with a space is one operand, got error %v", err)
	}
	if _, err := NewRequest("cube", nil); mdwerror.GetCode(err) != mdwerror.CodeUnknownOperation {
		t.Errorf("NewRequest(cube) error = %v, want unknown operation", err)
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code mdwerror.Code
	}{
		{"empty", "   ", mdwerror.CodeInvalidRequest},
		{"unknown", "cube 3", mdwerror.CodeUnknownOperation},
		{"unary without operand", "sqrt", mdwerror.CodeInvalidRequest},
		{"unary with two operands", "percent 1 2", mdwerror.CodeInvalidRequest},
		{"power with three operands", "power 1 2 3", mdwerror.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.line)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("ParseCommand(%q) error = %v, want code %s", tt.line, err, tt.code)
			}
		})
	}
}
