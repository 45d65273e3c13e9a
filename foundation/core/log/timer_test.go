// File: timer_test.go
// Title: Performance Timer Tests
// Description: Tests for timing operations through the logger.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package log

import (
	"errors"
	"testing"
)

func TestTimerStop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	timer := logger.WithRequestID("req-5").StartTimer("evaluate").WithField("operation_name", "sum")
	if !timer.IsRunning() {
		t.Fatal("timer should be running")
	}
	timer.Stop()

	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	if line["message"] != "evaluate completed" || line["level"] != "debug" {
		t.Errorf("line = %v", line)
	}
	if line["request_id"] != "req-5" || line["operation_name"] != "sum" || line["success"] != true {
		t.Errorf("context missing: %v", line)
	}
	if _, ok := line["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.StartTimer("evaluate").StopWithError(errors.New("negative"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0]["level"] != "warn" || lines[0]["error"] != "negative" || lines[0]["success"] != false {
		t.Errorf("line = %v", lines[0])
	}
}

func TestTimerBelowLevelAndCancel(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	if logger.StartTimer("quiet").Stop() < 0 {
		t.Error("elapsed must not be negative")
	}

	cancelled := logger.StartTimer("cancelled").WithLevel(LevelInfo)
	cancelled.Cancel()
	cancelled.Stop()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}
