package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/exact/internal/calc/handler"
	"github.com/msto63/exact/internal/calc/service"
	"github.com/msto63/exact/pkg/core/health"
	"github.com/msto63/exact/pkg/core/logging"
)

// HTTPServer is the JSON and WebSocket gateway of the calc service
type HTTPServer struct {
	httpServer *http.Server
	handler    *handler.Handler
	logger     *logging.Logger
	config     HTTPConfig
	listener   net.Listener
}

// HTTPConfig holds gateway configuration
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Version      string
	Logger       *logging.Logger
}

// DefaultHTTPConfig returns default gateway configuration
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Host:         "0.0.0.0",
		Port:         8300,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Version:      "0.1.0",
	}
}

// NewHTTPServer creates the gateway for svc. registry backs GET /health.
func NewHTTPServer(cfg HTTPConfig, svc *service.Service, registry *health.Registry) *HTTPServer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("calc-gateway")
	}

	h := handler.NewHandler(cfg.Version, svc, registry)
	if cfg.Logger != nil {
		h.SetLogger(cfg.Logger)
	}

	mux := http.NewServeMux()
	mux.Handle("/", h)

	return &HTTPServer{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      loggingMiddleware(logger, mux),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler: h,
		logger:  logger,
		config:  cfg,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"request_id", wrapper.Header().Get(handler.RequestIDHeader),
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Start listens on the configured address and serves until stopped
func (s *HTTPServer) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(listener)
}

// StartAsync starts the gateway in a goroutine
func (s *HTTPServer) StartAsync() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.Serve(listener); err != nil {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Serve serves on an existing listener until stopped. A regular shutdown
// returns nil.
func (s *HTTPServer) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("Starting calc gateway", "address", listener.Addr().String())

	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the gateway down
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping calc gateway")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the API handler
func (s *HTTPServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Address returns the listen address
func (s *HTTPServer) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
