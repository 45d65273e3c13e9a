package service

import (
	"fmt"
	"strings"

	mdwerrors "github.com/msto63/exact/foundation/core/errors"
	"github.com/msto63/exact/foundation/utils/mathx"
)

// ParseCommand parses a line such as "sum 0.1 0.2" or "power 2 10".
// Operands stay strings so that they are coerced like any other numeric
// string; "true" and "false" are booleans and "null", "nil" or "_" mark a
// missing operand.
func ParseCommand(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Request{}, mdwerrors.CalcInvalidRequest("parse", "empty command", nil)
	}
	return NewRequest(fields[0], fields[1:])
}

// NewRequest builds the request for operation from already separated
// operand tokens, which may contain spaces
func NewRequest(operation string, tokens []string) (Request, error) {
	op, ok := mathx.LookupOperation(operation)
	if !ok {
		return Request{}, mdwerrors.CalcUnknownOperation(operation)
	}

	args := make([]interface{}, len(tokens))
	for i, token := range tokens {
		args[i] = ParseOperand(token)
	}

	req := Request{Operation: op.Name}
	switch op.Arity {
	case mathx.ArityUnary:
		if len(args) != 1 {
			return Request{}, mdwerrors.CalcInvalidRequest(op.Name, fmt.Sprintf("expects 1 operand, got %d", len(args)), nil)
		}
		req.Value = args[0]
	case mathx.ArityPower:
		if len(args) < 1 || len(args) > 2 {
			return Request{}, mdwerrors.CalcInvalidRequest(op.Name, fmt.Sprintf("expects a value and an optional exponent, got %d operands", len(args)), nil)
		}
		req.Value = args[0]
		if len(args) == 2 {
			req.Exponent = args[1]
		}
	default:
		req.Values = args
	}
	return req, nil
}

// ParseOperand converts one command line token into an operand
func ParseOperand(token string) interface{} {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "true":
		return true
	case "false":
		return false
	case "null", "nil", "_":
		return nil
	default:
		return token
	}
}
