package service

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	mdwerror "github.com/msto63/exact/foundation/core/error"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
	"github.com/msto63/exact/pkg/core/logging"
)

func newTestService(t *testing.T) (*Service, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	svc, err := NewService(Config{
		MaxSeriesLength: 5,
		TracerProvider:  tp,
		MeterProvider:   noop.NewMeterProvider(),
		Logger:          logging.Nop(),
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, recorder
}

func TestNewService(t *testing.T) {
	svc, err := NewService(Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if svc == nil {
		t.Fatal("NewService() returned nil")
	}
	if svc.MaxSeriesLength() != DefaultMaxSeriesLength {
		t.Errorf("MaxSeriesLength() = %d, want %d", svc.MaxSeriesLength(), DefaultMaxSeriesLength)
	}
	if len(svc.Operations()) != 13 {
		t.Errorf("Operations() returned %d operations, want 13", len(svc.Operations()))
	}
}

func TestService_Evaluate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     Request
		outcome string
		want    float64
		text    string
	}{
		{"sum", Request{Operation: "sum", Values: []interface{}{0.1, 0.2}}, OutcomeValue, 0.3, "0.3"},
		{"sum of strings", Request{Operation: "SUM", Values: []interface{}{"0.1", "0.2", "x"}}, OutcomeValue, 0.3, "0.3"},
		{"product", Request{Operation: "product", Values: []interface{}{0.1, 0.1}}, OutcomeValue, 0.01, "0.01"},
		{"quotient", Request{Operation: "quotient", Values: []interface{}{0.15, 10}}, OutcomeValue, 0.015, "0.015"},
		{"difference", Request{Operation: "difference", Values: []interface{}{1, 2, 3}}, OutcomeValue, -4, "-4"},
		{"empty mean", Request{Operation: "mean"}, OutcomeValue, 0, "0"},
		{"median", Request{Operation: "median", Values: []interface{}{9, 1, 6, 3, 7}}, OutcomeValue, 6, "6"},
		{"empty median", Request{Operation: "median"}, OutcomeValue, math.NaN(), "NaN"},
		{"range", Request{Operation: "range", Values: []interface{}{0.3, 0.1}}, OutcomeValue, 0.2, "0.2"},
		{"series from value", Request{Operation: "sum", Value: 5}, OutcomeValue, 5, "5"},
		{"percent", Request{Operation: "percent", Value: 50}, OutcomeValue, 0.5, "0.5"},
		{"percent from values", Request{Operation: "percent", Values: []interface{}{"12.5"}}, OutcomeValue, 0.125, "0.125"},
		{"percent of text", Request{Operation: "percent", Value: "abc"}, OutcomeExcluded, math.NaN(), `"abc"`},
		{"reciprocal of zero", Request{Operation: "reciprocal", Value: 0}, OutcomeValue, math.Inf(1), "+Inf"},
		{"square", Request{Operation: "square", Value: 1.1}, OutcomeValue, 1.21, "1.21"},
		{"sqrt", Request{Operation: "sqrt", Value: 0}, OutcomeValue, 0, "0"},
		{"power", Request{Operation: "power", Value: 0.1, Exponent: 3}, OutcomeValue, 0.001, "0.001"},
		{"power from values", Request{Operation: "power", Values: []interface{}{"2", "10"}}, OutcomeValue, 1024, "1024"},
		{"power default exponent", Request{Operation: "power", Value: 4}, OutcomeValue, 4, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Evaluate(ctx, tt.req)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if resp.Outcome != tt.outcome {
				t.Errorf("Outcome = %q, want %q", resp.Outcome, tt.outcome)
			}
			if resp.Text != tt.text {
				t.Errorf("Text = %q, want %q", resp.Text, tt.text)
			}
			got := resp.Float64()
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Errorf("Float64() = %v, want NaN", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Float64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_EvaluateNonFiniteHasNoValue(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Evaluate(context.Background(), Request{Operation: "median"})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if resp.Value != nil {
		t.Errorf("Value = %v, want nil", *resp.Value)
	}
}

func TestService_EvaluateMode(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Evaluate(context.Background(), Request{Operation: "mode", Values: []interface{}{1, 4, 2, 4, 1}})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(resp.Values) != 2 || resp.Values[0] != 1 || resp.Values[1] != 4 {
		t.Errorf("Values = %v, want [1 4]", resp.Values)
	}
	if resp.Text != "1 4" {
		t.Errorf("Text = %q, want %q", resp.Text, "1 4")
	}
	if resp.Value != nil {
		t.Error("Value should be nil for mode")
	}
}

func TestService_EvaluateModeNonFinite(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		values []interface{}
		want   []float64
		text   string
	}{
		{"infinite mode", []interface{}{"Infinity", "Infinity", 1}, []float64{}, "+Inf"},
		{"mixed modes", []interface{}{"-Infinity", 2, "-Infinity", 2}, []float64{2}, "-Inf 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Evaluate(context.Background(), Request{Operation: "mode", Values: tt.values})
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if resp.Text != tt.text {
				t.Errorf("Text = %q, want %q", resp.Text, tt.text)
			}
			if len(resp.Values) != len(tt.want) {
				t.Fatalf("Values = %v, want %v", resp.Values, tt.want)
			}
			for i := range tt.want {
				if resp.Values[i] != tt.want[i] {
					t.Errorf("Values = %v, want %v", resp.Values, tt.want)
				}
			}
			if _, err := json.Marshal(resp); err != nil {
				t.Errorf("json.Marshal() error = %v", err)
			}
		})
	}
}

func TestService_EvaluateDomainErrors(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  Request
		code mdwerror.Code
	}{
		{"negative sqrt", Request{Operation: "sqrt", Value: -1}, mdwerror.CodeNegativeSqrt},
		{"non-numeric sqrt", Request{Operation: "sqrt", Value: "abc"}, mdwerror.CodeNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Evaluate(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if resp.Outcome != OutcomeError {
				t.Errorf("Outcome = %q, want %q", resp.Outcome, OutcomeError)
			}
			if resp.ErrorCode != tt.code.String() {
				t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, tt.code)
			}
			if resp.Error == "" {
				t.Error("Error message should be set")
			}
		})
	}
}

func TestService_EvaluateRejects(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  Request
		code mdwerror.Code
	}{
		{"unknown operation", Request{Operation: "cube", Value: 2}, mdwerror.CodeUnknownOperation},
		{"empty operation", Request{}, mdwerror.CodeUnknownOperation},
		{"series too long", Request{Operation: "sum", Values: []interface{}{1, 2, 3, 4, 5, 6}}, mdwerror.CodeValueOutOfRange},
		{"power without value", Request{Operation: "power", Exponent: 2}, mdwerror.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Evaluate(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("Evaluate() = %+v, want error", resp)
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("error code = %s, want %s", mdwerror.GetCode(err), tt.code)
			}
		})
	}

	if got := svc.Stats().Rejected; got != uint64(len(tests)) {
		t.Errorf("Stats().Rejected = %d, want %d", got, len(tests))
	}
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Evaluate(ctx, Request{Operation: "sum", Values: []interface{}{i}}); err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
	}

	stats := svc.Stats()
	if stats.Evaluations != 3 || stats.Rejected != 0 {
		t.Errorf("Stats() = %+v, want 3 evaluations and no rejections", stats)
	}
}

func TestService_EvaluateRecordsSpan(t *testing.T) {
	svc, recorder := newTestService(t)
	ctx := coreGrpc.WithRequestID(context.Background(), "req-1")

	if _, err := svc.Evaluate(ctx, Request{Operation: "sum", Values: []interface{}{1, 2}}); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if _, err := svc.Evaluate(ctx, Request{Operation: "nope"}); err == nil {
		t.Fatal("Evaluate() should fail for an unknown operation")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}

	ok, failed := spans[0], spans[1]
	if ok.Name() != "calc.evaluate" {
		t.Errorf("span name = %q, want %q", ok.Name(), "calc.evaluate")
	}
	if ok.Status().Code != codes.Ok {
		t.Errorf("span status = %v, want Ok", ok.Status().Code)
	}
	if got := spanAttribute(ok.Attributes(), "calc.outcome"); got != OutcomeValue {
		t.Errorf("calc.outcome = %q, want %q", got, OutcomeValue)
	}
	if got := spanAttribute(ok.Attributes(), "calc.operation"); got != "sum" {
		t.Errorf("calc.operation = %q, want %q", got, "sum")
	}

	if failed.Status().Code != codes.Error {
		t.Errorf("failed span status = %v, want Error", failed.Status().Code)
	}
	if got := spanAttribute(failed.Attributes(), "calc.outcome"); got != OutcomeRejected {
		t.Errorf("calc.outcome = %q, want %q", got, OutcomeRejected)
	}
	if len(failed.Events()) == 0 {
		t.Error("failed span should record the error event")
	}
}

func spanAttribute(attrs []attribute.KeyValue, key string) string {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestService_SelfTest(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.SelfTest(context.Background()); err != nil {
		t.Errorf("SelfTest() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.SelfTest(ctx); err == nil {
		t.Error("SelfTest() should report a cancelled context")
	}
}

func TestResponse_String(t *testing.T) {
	f := 0.3
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"value", Response{Outcome: OutcomeValue, Value: &f, Text: "0.3"}, "0.3"},
		{"excluded", Response{Outcome: OutcomeExcluded, Original: `"abc"`}, `not numeric: "abc"`},
		{"error", Response{Outcome: OutcomeError, Error: "boom"}, "error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.3, "0.3"},
		{-4, "-4"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
