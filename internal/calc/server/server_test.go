package server

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	mdwerror "github.com/msto63/exact/foundation/core/error"
	"github.com/msto63/exact/internal/calc/service"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
	"github.com/msto63/exact/pkg/core/health"
	"github.com/msto63/exact/pkg/core/logging"
)

func startTestServer(t *testing.T) (*Server, *grpc.ClientConn) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logger = logging.Nop()
	cfg.ServiceConfig = service.Config{MaxSeriesLength: 10, Logger: logging.Nop()}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	srv.PublishHealth(context.Background())

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	clientCfg := coreGrpc.DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Logger = logging.Nop()
	conn, err := coreGrpc.Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = logging.Nop()
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.Service() == nil {
		t.Error("Service() should not be nil")
	}
	if srv.Address() != "0.0.0.0:9300" {
		t.Errorf("Address() = %q, want %q", srv.Address(), "0.0.0.0:9300")
	}

	report := srv.HealthRegistry().Check(context.Background())
	if report.Status != health.StatusHealthy {
		t.Errorf("health status = %s, want healthy", report.Status)
	}
}

func TestNew_SharedService(t *testing.T) {
	svc, err := service.NewService(service.Config{Logger: logging.Nop()})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	srv, err := New(Config{Service: svc, Logger: logging.Nop()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.Service() != svc {
		t.Error("New() should use the given service")
	}
}

func TestClient_Evaluate(t *testing.T) {
	_, conn := startTestServer(t)
	client := NewClient(conn)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		req     service.Request
		outcome string
		text    string
	}{
		{"sum", service.Request{Operation: "sum", Values: []interface{}{0.1, 0.2}}, service.OutcomeValue, "0.3"},
		{"numeric strings", service.Request{Operation: "sum", Values: []interface{}{"1,000.5", "0.25"}}, service.OutcomeValue, "1000.75"},
		{"quotient", service.Request{Operation: "quotient", Values: []interface{}{0.15, 10}}, service.OutcomeValue, "0.015"},
		{"power", service.Request{Operation: "power", Value: "2", Exponent: "10"}, service.OutcomeValue, "1024"},
		{"empty median", service.Request{Operation: "median"}, service.OutcomeValue, "NaN"},
		{"excluded", service.Request{Operation: "percent", Value: "abc"}, service.OutcomeExcluded, `"abc"`},
		{"negative sqrt", service.Request{Operation: "sqrt", Value: -4}, service.OutcomeError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Evaluate(ctx, tt.req)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if resp.Outcome != tt.outcome {
				t.Errorf("Outcome = %q, want %q", resp.Outcome, tt.outcome)
			}
			if tt.text != "" && resp.Text != tt.text {
				t.Errorf("Text = %q, want %q", resp.Text, tt.text)
			}
		})
	}
}

func TestClient_EvaluateErrorResponse(t *testing.T) {
	_, conn := startTestServer(t)
	client := NewClient(conn)

	resp, err := client.Evaluate(context.Background(), service.Request{Operation: "sqrt", Value: -4})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if resp.ErrorCode != mdwerror.CodeNegativeSqrt.String() {
		t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, mdwerror.CodeNegativeSqrt)
	}
	if resp.Value != nil {
		t.Error("Value should be nil for an error outcome")
	}
}

func TestClient_EvaluateMode(t *testing.T) {
	_, conn := startTestServer(t)
	client := NewClient(conn)

	resp, err := client.Evaluate(context.Background(), service.Request{Operation: "mode", Values: []interface{}{1, 1, 2, 4, 4}})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(resp.Values) != 2 || resp.Values[0] != 1 || resp.Values[1] != 4 {
		t.Errorf("Values = %v, want [1 4]", resp.Values)
	}
}

func TestClient_EvaluateRejected(t *testing.T) {
	_, conn := startTestServer(t)
	client := NewClient(conn)

	tests := []struct {
		name string
		req  service.Request
		code mdwerror.Code
	}{
		{"unknown operation", service.Request{Operation: "cube"}, mdwerror.CodeUnknownOperation},
		{"too many values", service.Request{Operation: "sum", Values: make([]interface{}, 11)}, mdwerror.CodeValueOutOfRange},
		{"power without value", service.Request{Operation: "power"}, mdwerror.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Evaluate(context.Background(), tt.req)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestClient_ListOperations(t *testing.T) {
	_, conn := startTestServer(t)
	client := NewClient(conn)

	ops, err := client.ListOperations(context.Background())
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 13 {
		t.Fatalf("ListOperations() returned %d operations, want 13", len(ops))
	}
	if ops[0].Name != "sum" || ops[0].Arity != "series" {
		t.Errorf("first operation = %+v, want sum/series", ops[0])
	}
	for _, op := range ops {
		if op.Name == "mode" && !op.ReturnsSet {
			t.Error("mode should return a set")
		}
	}
}

func TestServer_Health(t *testing.T) {
	_, conn := startTestServer(t)
	client := healthpb.NewHealthClient(conn)

	for _, name := range []string{"", CalcServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
		if err != nil {
			t.Fatalf("Check(%q) error = %v", name, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("Check(%q) = %v, want SERVING", name, resp.GetStatus())
		}
	}
}
