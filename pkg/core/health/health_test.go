package health

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fixed(status Status) func(ctx context.Context) CheckResult {
	return func(ctx context.Context) CheckResult {
		return CheckResult{Status: status}
	}
}

func TestNewChecker(t *testing.T) {
	checker := NewChecker("selftest", func(ctx context.Context) CheckResult {
		return CheckResult{Name: "selftest", Status: StatusHealthy, Message: "ok"}
	})

	if checker.Name() != "selftest" {
		t.Errorf("Name() = %v, want selftest", checker.Name())
	}
	result := checker.Check(context.Background())
	if result.Status != StatusHealthy || result.Message != "ok" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckFunc(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  Status
		wantMessage string
	}{
		{"nil error", nil, StatusHealthy, "ok"},
		{"error", errors.New("0.1 + 0.2 = 0.30000000000000004"), StatusUnhealthy, "0.1 + 0.2 = 0.30000000000000004"},
		{"context error", context.Canceled, StatusUnhealthy, "context canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := CheckFunc("selftest", func(ctx context.Context) error { return tt.err })
			result := checker.Check(context.Background())
			if result.Name != "selftest" {
				t.Errorf("Name = %v, want selftest", result.Name)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", result.Status, tt.wantStatus)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMessage)
			}
		})
	}
}

func TestRegistry_OverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins over degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
		{"unknown counts as unhealthy", []Status{StatusHealthy, StatusUnknown}, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("calc", "0.1.0")
			for i, status := range tt.statuses {
				registry.Register(NewChecker(string(rune('a'+i)), fixed(status)))
			}

			report := registry.Check(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %v, want %v", report.Status, tt.want)
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Errorf("Checks = %d, want %d", len(report.Checks), len(tt.statuses))
			}
		})
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry("calc", "0.1.0")
	registry.Register(NewChecker("selftest", fixed(StatusUnhealthy)))
	registry.Register(NewChecker("selftest", fixed(StatusHealthy)))

	report := registry.Check(context.Background())
	if len(report.Checks) != 1 {
		t.Fatalf("Checks = %d, want 1", len(report.Checks))
	}
	if report.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
}

func TestRegistry_FillsNameAndTiming(t *testing.T) {
	registry := NewRegistry("calc", "0.1.0")
	registry.Register(NewChecker("unnamed", func(ctx context.Context) CheckResult {
		time.Sleep(5 * time.Millisecond)
		return CheckResult{Status: StatusHealthy}
	}))

	report := registry.Check(context.Background())
	result := report.Checks[0]
	if result.Name != "unnamed" {
		t.Errorf("Name = %q, want unnamed", result.Name)
	}
	if result.Duration < 5*time.Millisecond {
		t.Errorf("Duration = %v, want >= 5ms", result.Duration)
	}
	if result.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if report.Service != "calc" || report.Version != "0.1.0" {
		t.Errorf("report = %+v", report)
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("calc", "0.1.0")

	var running atomic.Int32
	for i := 0; i < 5; i++ {
		registry.Register(NewChecker("check"+string(rune('A'+i)), func(ctx context.Context) CheckResult {
			running.Add(1)
			time.Sleep(20 * time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		}))
	}

	start := time.Now()
	report := registry.Check(context.Background())
	duration := time.Since(start)

	if duration > 80*time.Millisecond {
		t.Errorf("Duration = %v, expected concurrent execution", duration)
	}
	if running.Load() != 5 || len(report.Checks) != 5 {
		t.Errorf("ran %d checks, reported %d, want 5", running.Load(), len(report.Checks))
	}
}

func TestRegistry_PassesContext(t *testing.T) {
	registry := NewRegistry("calc", "0.1.0")
	registry.Register(CheckFunc("selftest", func(ctx context.Context) error { return ctx.Err() }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if report := registry.Check(ctx); report.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy for canceled context", report.Status)
	}
}

func TestRegistry_Uptime(t *testing.T) {
	registry := NewRegistry("calc", "0.1.0")
	time.Sleep(10 * time.Millisecond)

	if report := registry.Check(context.Background()); report.Uptime < 10*time.Millisecond {
		t.Errorf("Uptime = %v, expected >= 10ms", report.Uptime)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{
		Service: "calc",
		Status:  StatusDegraded,
		Uptime:  time.Hour,
		Checks:  []CheckResult{{}, {}},
	}

	str := report.String()
	for _, want := range []string{"calc", "degraded", "1h0m0s", "Checks: 2"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q, missing %q", str, want)
		}
	}
}

func TestReport_ChecksSortedAndJSON(t *testing.T) {
	registry := NewRegistry("calc", "0.1.0")
	registry.Register(NewChecker("zeta", fixed(StatusHealthy)))
	registry.Register(NewChecker("alpha", fixed(StatusHealthy)))

	report := registry.Check(context.Background())
	if report.Checks[0].Name != "alpha" || report.Checks[1].Name != "zeta" {
		t.Errorf("checks not sorted: %v, %v", report.Checks[0].Name, report.Checks[1].Name)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["status"] != "healthy" || decoded["service"] != "calc" {
		t.Errorf("decoded = %v", decoded)
	}
}
