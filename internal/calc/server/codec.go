package server

import (
	"encoding/json"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	mdwerrors "github.com/msto63/exact/foundation/core/errors"
	"github.com/msto63/exact/foundation/utils/mathx"
	"github.com/msto63/exact/internal/calc/service"
)

// RequestToStruct encodes a request as a google.protobuf.Struct with the
// same field names as its JSON form
func RequestToStruct(req service.Request) (*structpb.Struct, error) {
	fields := map[string]*structpb.Value{
		"operation": structpb.NewStringValue(req.Operation),
	}
	if req.Values != nil {
		list := &structpb.ListValue{Values: make([]*structpb.Value, len(req.Values))}
		for i, v := range req.Values {
			list.Values[i] = operandValue(v)
		}
		fields["values"] = structpb.NewListValue(list)
	}
	if req.Value != nil {
		fields["value"] = operandValue(req.Value)
	}
	if req.Exponent != nil {
		fields["exponent"] = operandValue(req.Exponent)
	}
	return &structpb.Struct{Fields: fields}, nil
}

// operandValue encodes one operand. Numeric strings keep their text so the
// server sees the same decimal digits as the caller.
func operandValue(x interface{}) *structpb.Value {
	switch v := x.(type) {
	case json.Number:
		return structpb.NewStringValue(string(v))
	case *structpb.Value:
		return v
	}

	operand := mathx.Of(x)
	switch operand.Kind() {
	case mathx.KindMissing:
		return structpb.NewNullValue()
	case mathx.KindNumber, mathx.KindBoxed:
		return structpb.NewNumberValue(operand.Coerce())
	case mathx.KindBoolean:
		return structpb.NewBoolValue(operand.Coerce() == 1)
	case mathx.KindNumericString:
		if s, err := strconv.Unquote(operand.String()); err == nil {
			return structpb.NewStringValue(s)
		}
	}

	if v, err := structpb.NewValue(x); err == nil {
		return v
	}
	return structpb.NewStructValue(&structpb.Struct{})
}

// StructToRequest decodes a request produced by RequestToStruct or by any
// client sending the JSON shape
func StructToRequest(s *structpb.Struct) (service.Request, error) {
	var req service.Request
	if s == nil {
		return req, mdwerrors.CalcInvalidRequest("decode", "empty request", nil)
	}

	fields := s.GetFields()
	if op, ok := fields["operation"]; ok {
		name, ok := op.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return req, mdwerrors.CalcInvalidRequest("decode", "operation must be a string", nil)
		}
		req.Operation = name.StringValue
	}

	if values, ok := fields["values"]; ok {
		switch kind := values.GetKind().(type) {
		case *structpb.Value_ListValue:
			req.Values = kind.ListValue.AsSlice()
		case *structpb.Value_NullValue:
		default:
			return req, mdwerrors.CalcInvalidRequest("decode", "values must be a list", nil)
		}
	}
	if v, ok := fields["value"]; ok {
		req.Value = v.AsInterface()
	}
	if v, ok := fields["exponent"]; ok {
		req.Exponent = v.AsInterface()
	}
	return req, nil
}

// ResponseToStruct encodes a response. Non-finite results travel only in
// the text field.
func ResponseToStruct(resp *service.Response) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"operation": structpb.NewStringValue(resp.Operation),
		"outcome":   structpb.NewStringValue(resp.Outcome),
		"text":      structpb.NewStringValue(resp.Text),
	}
	if resp.Value != nil {
		fields["value"] = structpb.NewNumberValue(*resp.Value)
	}
	if resp.Values != nil {
		list := &structpb.ListValue{Values: make([]*structpb.Value, len(resp.Values))}
		for i, f := range resp.Values {
			list.Values[i] = structpb.NewNumberValue(f)
		}
		fields["values"] = structpb.NewListValue(list)
	}
	for key, value := range map[string]string{
		"original":   resp.Original,
		"error":      resp.Error,
		"error_code": resp.ErrorCode,
	} {
		if value != "" {
			fields[key] = structpb.NewStringValue(value)
		}
	}
	return &structpb.Struct{Fields: fields}
}

// StructToResponse decodes a response produced by ResponseToStruct
func StructToResponse(s *structpb.Struct) *service.Response {
	fields := s.GetFields()
	resp := &service.Response{
		Operation: fields["operation"].GetStringValue(),
		Outcome:   fields["outcome"].GetStringValue(),
		Text:      fields["text"].GetStringValue(),
		Original:  fields["original"].GetStringValue(),
		Error:     fields["error"].GetStringValue(),
		ErrorCode: fields["error_code"].GetStringValue(),
	}
	if v, ok := fields["value"]; ok {
		if n, ok := v.GetKind().(*structpb.Value_NumberValue); ok && !math.IsNaN(n.NumberValue) && !math.IsInf(n.NumberValue, 0) {
			f := n.NumberValue
			resp.Value = &f
		}
	}
	if v, ok := fields["values"]; ok {
		list := v.GetListValue().GetValues()
		resp.Values = make([]float64, len(list))
		for i, item := range list {
			resp.Values[i] = item.GetNumberValue()
		}
	}
	return resp
}

// OperationsToStruct encodes the operation list
func OperationsToStruct(ops []service.OperationInfo) *structpb.Struct {
	list := &structpb.ListValue{Values: make([]*structpb.Value, len(ops))}
	for i, op := range ops {
		list.Values[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"name":        structpb.NewStringValue(op.Name),
			"arity":       structpb.NewStringValue(op.Arity),
			"description": structpb.NewStringValue(op.Description),
			"returns_set": structpb.NewBoolValue(op.ReturnsSet),
		}})
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"operations": structpb.NewListValue(list),
	}}
}

// StructToOperations decodes the operation list
func StructToOperations(s *structpb.Struct) []service.OperationInfo {
	items := s.GetFields()["operations"].GetListValue().GetValues()
	ops := make([]service.OperationInfo, len(items))
	for i, item := range items {
		fields := item.GetStructValue().GetFields()
		ops[i] = service.OperationInfo{
			Name:        fields["name"].GetStringValue(),
			Arity:       fields["arity"].GetStringValue(),
			Description: fields["description"].GetStringValue(),
			ReturnsSet:  fields["returns_set"].GetBoolValue(),
		}
	}
	return ops
}
