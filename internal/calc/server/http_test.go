package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/exact/internal/calc/service"
	"github.com/msto63/exact/pkg/core/logging"
)

func startTestGateway(t *testing.T) string {
	t.Helper()

	grpcCfg := DefaultConfig()
	grpcCfg.Logger = logging.Nop()
	srv, err := New(grpcCfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cfg := DefaultHTTPConfig()
	cfg.Logger = logging.Nop()
	gateway := NewHTTPServer(cfg, srv.Service(), srv.HealthRegistry())

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	go func() { _ = gateway.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = gateway.Stop(ctx)
	})

	return lis.Addr().String()
}

func TestHTTPServer_Calc(t *testing.T) {
	addr := startTestGateway(t)

	resp, err := http.Post("http://"+addr+"/api/v1/calc/sum", "application/json", strings.NewReader(`{"values": [0.1, 0.2]}`))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out service.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if out.Value == nil || *out.Value != 0.3 {
		t.Errorf("Value = %v, want 0.3", out.Value)
	}
}

func TestHTTPServer_WebSocketThroughMiddleware(t *testing.T) {
	addr := startTestGateway(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/api/v1/calc/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var reply map[string]interface{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if reply["type"] != "pong" {
		t.Errorf("reply = %v, want pong", reply)
	}
}

func TestHTTPServer_Address(t *testing.T) {
	gateway := NewHTTPServer(DefaultHTTPConfig(), nil, nil)
	if gateway.Address() != "0.0.0.0:8300" {
		t.Errorf("Address() = %q, want %q", gateway.Address(), "0.0.0.0:8300")
	}
}
