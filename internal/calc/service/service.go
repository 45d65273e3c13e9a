// ============================================================================
// exact - decimal-safe arithmetic service
// ============================================================================
//
// Package: service
// Description: Evaluates calculation requests against the mathx operation
//              registry, with tracing and metrics
// Author: msto63
// Created: 2026-10-18
// License: MIT
// ============================================================================

package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	mdwerror "github.com/msto63/exact/foundation/core/error"
	mdwerrors "github.com/msto63/exact/foundation/core/errors"
	"github.com/msto63/exact/foundation/utils/mathx"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
	"github.com/msto63/exact/pkg/core/logging"
)

// InstrumentationName names the tracer and meter of the calc service
const InstrumentationName = "github.com/msto63/exact/internal/calc"

// DefaultMaxSeriesLength bounds the operands of one request
const DefaultMaxSeriesLength = 10000

// Outcome names used in responses, span attributes and metrics
const (
	OutcomeValue    = "value"
	OutcomeExcluded = "excluded"
	OutcomeError    = "error"
	// OutcomeRejected is only reported to telemetry for failed requests
	OutcomeRejected = "rejected"
)

// Request is one calculation. Series operations read Values, falling back
// to Value as a single member. Unary operations read Value, falling back to
// the first member of Values. Power additionally reads Exponent, falling
// back to the next member of Values.
type Request struct {
	Operation string        `json:"operation"`
	Values    []interface{} `json:"values,omitempty"`
	Value     interface{}   `json:"value,omitempty"`
	Exponent  interface{}   `json:"exponent,omitempty"`
}

// Response is the result of one calculation
type Response struct {
	Operation string `json:"operation"`
	Outcome   string `json:"outcome"`
	// Value and Values leave out non-finite results, Text still carries them
	Value     *float64  `json:"value,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Text      string    `json:"text"`
	Original  string    `json:"original,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
}

// String renders the response for terminals
func (r *Response) String() string {
	switch r.Outcome {
	case OutcomeError:
		return "error: " + r.Error
	case OutcomeExcluded:
		return "not numeric: " + r.Original
	default:
		return r.Text
	}
}

// Float64 returns the numeric result, NaN when there is none
func (r *Response) Float64() float64 {
	if r.Value != nil {
		return *r.Value
	}
	switch r.Text {
	case "+Inf":
		return math.Inf(1)
	case "-Inf":
		return math.Inf(-1)
	}
	return math.NaN()
}

// Stats holds service counters
type Stats struct {
	Evaluations uint64 `json:"evaluations"`
	Rejected    uint64 `json:"rejected"`
}

// Config holds service configuration
type Config struct {
	MaxSeriesLength int
	TracerProvider  trace.TracerProvider
	MeterProvider   metric.MeterProvider
	Logger          *logging.Logger
}

// Service is the calc service
type Service struct {
	logger          *logging.Logger
	maxSeriesLength int

	tracer      trace.Tracer
	evaluations metric.Int64Counter
	duration    metric.Float64Histogram

	evaluated atomic.Uint64
	rejected  atomic.Uint64
}

// NewService creates a new calc service. Missing providers fall back to
// the global OpenTelemetry providers.
func NewService(cfg Config) (*Service, error) {
	if cfg.MaxSeriesLength <= 0 {
		cfg.MaxSeriesLength = DefaultMaxSeriesLength
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("calc-service")
	}

	meter := cfg.MeterProvider.Meter(InstrumentationName)

	evaluations, err := meter.Int64Counter(
		"exact.calc.evaluations",
		metric.WithDescription("Number of evaluated calculation requests"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create evaluation counter").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("service.NewService")
	}

	duration, err := meter.Float64Histogram(
		"exact.calc.duration",
		metric.WithDescription("Duration of calculation requests"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create duration histogram").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("service.NewService")
	}

	return &Service{
		logger:          cfg.Logger,
		maxSeriesLength: cfg.MaxSeriesLength,
		tracer:          cfg.TracerProvider.Tracer(InstrumentationName),
		evaluations:     evaluations,
		duration:        duration,
	}, nil
}

// MaxSeriesLength returns the operand limit of one request
func (s *Service) MaxSeriesLength() int {
	return s.maxSeriesLength
}

// OperationInfo describes an operation to clients
type OperationInfo struct {
	Name        string `json:"name"`
	Arity       string `json:"arity"`
	Description string `json:"description"`
	ReturnsSet  bool   `json:"returns_set,omitempty"`
}

// Operations returns the operations the service evaluates
func (s *Service) Operations() []OperationInfo {
	return ListOperations()
}

// ListOperations describes every mathx operation in registry order
func ListOperations() []OperationInfo {
	ops := mathx.Operations()
	infos := make([]OperationInfo, len(ops))
	for i, op := range ops {
		infos[i] = OperationInfo{
			Name:        op.Name,
			Arity:       op.Arity.String(),
			Description: op.Description,
			ReturnsSet:  op.ReturnsSet,
		}
	}
	return infos
}

// Stats returns a snapshot of the service counters
func (s *Service) Stats() Stats {
	return Stats{
		Evaluations: s.evaluated.Load(),
		Rejected:    s.rejected.Load(),
	}
}

// Evaluate runs one calculation. Domain errors such as the square root of
// a negative number are reported in the response; the returned error is
// reserved for requests that cannot be evaluated at all.
func (s *Service) Evaluate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	name := strings.ToLower(strings.TrimSpace(req.Operation))

	ctx, span := s.tracer.Start(ctx, "calc.evaluate",
		trace.WithAttributes(
			attribute.String("calc.operation", name),
			attribute.Int("calc.operands", len(req.Values)),
		),
	)
	defer span.End()

	resp, err := s.evaluate(name, req)

	outcome := OutcomeRejected
	if err == nil {
		outcome = resp.Outcome
	}
	attrs := []attribute.KeyValue{
		attribute.String("operation", name),
		attribute.String("outcome", outcome),
	}
	s.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	s.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, metric.WithAttributes(attrs...))
	span.SetAttributes(attribute.String("calc.outcome", outcome))

	logger := s.logger.WithRequestID(coreGrpc.GetRequestID(ctx))
	if err != nil {
		s.rejected.Add(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("Calculation rejected", "operation", name, "error", err)
		return nil, err
	}

	s.evaluated.Add(1)
	span.SetStatus(codes.Ok, "")
	logger.Debug("Calculation evaluated",
		"operation", name,
		"outcome", resp.Outcome,
		"result", resp.Text,
	)
	return resp, nil
}

func (s *Service) evaluate(name string, req Request) (*Response, error) {
	op, ok := mathx.LookupOperation(name)
	if !ok {
		return nil, mdwerrors.CalcUnknownOperation(req.Operation)
	}

	switch op.Arity {
	case mathx.AritySeries:
		return s.evaluateSeries(op, req)
	case mathx.ArityUnary:
		operand, _ := unaryOperands(req)
		result, _ := mathx.Convert(op.Name, mathx.Of(operand))
		return fromResult(op.Name, result), nil
	case mathx.ArityPower:
		value, exponent := unaryOperands(req)
		args := mathx.PowerArgs{Value: mathx.Of(value), Exponent: mathx.Of(exponent)}
		if args.Value.IsMissing() {
			return nil, mdwerrors.CalcInvalidRequest(op.Name, "value is required", nil)
		}
		return fromResult(op.Name, mathx.Power(args)), nil
	default:
		return nil, mdwerrors.CalcUnknownOperation(req.Operation)
	}
}

func (s *Service) evaluateSeries(op mathx.Operation, req Request) (*Response, error) {
	values := req.Values
	if len(values) == 0 && req.Value != nil {
		values = []interface{}{req.Value}
	}
	if len(values) > s.maxSeriesLength {
		return nil, mdwerrors.OutOfRange("calc", op.Name, len(values), 0, s.maxSeriesLength)
	}

	series := mathx.NewSeries(values)

	if op.ReturnsSet {
		modes := mathx.Mode(series)
		texts := make([]string, len(modes))
		finite := make([]float64, 0, len(modes))
		for i, m := range modes {
			texts[i] = FormatNumber(m)
			if !math.IsNaN(m) && !math.IsInf(m, 0) {
				finite = append(finite, m)
			}
		}
		return &Response{
			Operation: op.Name,
			Outcome:   OutcomeValue,
			Values:    finite,
			Text:      strings.Join(texts, " "),
		}, nil
	}

	f, ok := mathx.Reduce(op.Name, series)
	if !ok {
		return nil, mdwerrors.CalcUnknownOperation(req.Operation)
	}
	return numberResponse(op.Name, f), nil
}

// unaryOperands picks the value and exponent of a unary or power request
func unaryOperands(req Request) (value, exponent interface{}) {
	rest := req.Values
	value = req.Value
	if value == nil && len(rest) > 0 {
		value, rest = rest[0], rest[1:]
	}
	exponent = req.Exponent
	if exponent == nil && len(rest) > 0 {
		exponent = rest[0]
	}
	return value, exponent
}

func numberResponse(operation string, f float64) *Response {
	resp := &Response{
		Operation: operation,
		Outcome:   OutcomeValue,
		Text:      FormatNumber(f),
	}
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		resp.Value = &f
	}
	return resp
}

func fromResult(operation string, r mathx.Result) *Response {
	switch r.Outcome() {
	case mathx.OutcomeValue:
		resp := numberResponse(operation, r.Float64())
		resp.Original = r.Original().String()
		return resp
	case mathx.OutcomeError:
		return &Response{
			Operation: operation,
			Outcome:   OutcomeError,
			Text:      r.String(),
			Original:  r.Original().String(),
			Error:     r.Err().Error(),
			ErrorCode: mdwerror.GetCode(r.Err()).String(),
		}
	default:
		return &Response{
			Operation: operation,
			Outcome:   OutcomeExcluded,
			Text:      r.String(),
			Original:  r.Original().String(),
		}
	}
}

// FormatNumber renders f like mathx.FormatFloat, with NaN, +Inf and -Inf
// spelled out
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return mathx.FormatFloat(f)
}

// SelfTest checks the decimal normalization end to end
func (s *Service) SelfTest(ctx context.Context) error {
	resp, err := s.evaluate("sum", Request{Operation: "sum", Values: []interface{}{0.1, 0.2}})
	if err != nil {
		return err
	}
	if resp.Value == nil || *resp.Value != 0.3 {
		return mdwerror.New(fmt.Sprintf("self test failed: 0.1 + 0.2 = %s", resp.Text)).
			WithCode(mdwerror.CodeInternal).
			WithOperation("service.SelfTest")
	}
	return ctx.Err()
}
