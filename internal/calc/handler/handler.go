package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/exact/foundation/core/error"
	mdwerrors "github.com/msto63/exact/foundation/core/errors"
	"github.com/msto63/exact/foundation/utils/mathx"
	"github.com/msto63/exact/internal/calc/service"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
	"github.com/msto63/exact/pkg/core/health"
	"github.com/msto63/exact/pkg/core/logging"
)

// MaxBodyBytes bounds calculation request bodies
const MaxBodyBytes = 1 << 20

// RequestIDHeader carries the request ID of HTTP requests and responses
const RequestIDHeader = "X-Request-ID"

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// OperationsResponse lists the available operations
type OperationsResponse struct {
	Operations []service.OperationInfo `json:"operations"`
	Total      int                     `json:"total"`
}

// StatsResponse reports service counters
type StatsResponse struct {
	service.Stats
	Uptime string `json:"uptime"`
}

// Handler handles HTTP requests for the calc gateway
type Handler struct {
	service   *service.Service
	health    *health.Registry
	ws        *WebSocketHandler
	logger    *logging.Logger
	startTime time.Time
	version   string
}

// NewHandler creates a new API handler. registry may be nil.
func NewHandler(version string, svc *service.Service, registry *health.Registry) *Handler {
	if registry == nil {
		registry = health.NewRegistry("gateway", version)
	}
	return &Handler{
		service:   svc,
		health:    registry,
		ws:        NewWebSocketHandler(svc),
		logger:    logging.New("calc-handler"),
		startTime: time.Now(),
		version:   version,
	}
}

// SetLogger replaces the logger of the handler and its WebSocket handler
func (h *Handler) SetLogger(logger *logging.Logger) {
	h.logger = logger
	h.ws.logger = logger
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r = withRequestID(w, r)

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch {
	case path == "":
		h.handleRoot(w, r)
	case path == "health":
		h.handleHealth(w, r)
	case path == "operations":
		h.handleOperations(w, r)
	case path == "stats":
		h.handleStats(w, r)
	case path == "calc/ws":
		h.ws.ServeHTTP(w, r)
	case strings.HasPrefix(path, "calc/"):
		h.handleCalc(w, r, strings.TrimPrefix(path, "calc/"))
	default:
		h.writeError(w, http.StatusNotFound, "not_found", "Endpoint not found", "")
	}
}

// withRequestID takes the caller's request ID or assigns a new one and
// makes it visible to the service logs
func withRequestID(w http.ResponseWriter, r *http.Request) *http.Request {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, requestID)
	return r.WithContext(coreGrpc.WithRequestID(r.Context(), requestID))
}

// handleRoot describes the API
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "exact",
		"version": h.version,
		"endpoints": map[string]string{
			"health":     "GET /health",
			"operations": "GET /api/v1/operations",
			"stats":      "GET /api/v1/stats",
			"calc":       "POST /api/v1/calc/{operation}",
			"websocket":  "GET /api/v1/calc/ws",
		},
	}
	h.writeJSON(w, http.StatusOK, info)
}

// handleHealth reports the health registry
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	report := h.health.Check(r.Context())
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

// handleOperations lists the operations
func (h *Handler) handleOperations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	ops := h.service.Operations()
	h.writeJSON(w, http.StatusOK, OperationsResponse{Operations: ops, Total: len(ops)})
}

// handleStats reports service counters
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	h.writeJSON(w, http.StatusOK, StatsResponse{
		Stats:  h.service.Stats(),
		Uptime: time.Since(h.startTime).String(),
	})
}

// handleCalc evaluates POST /api/v1/calc/{operation}
func (h *Handler) handleCalc(w http.ResponseWriter, r *http.Request, operation string) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", "")
		return
	}

	if _, ok := mathx.LookupOperation(operation); !ok {
		h.writeServiceError(w, mdwerrors.CalcUnknownOperation(operation))
		return
	}

	var req service.Request
	if err := h.readJSON(r, &req); err != nil {
		h.writeServiceError(w, mdwerrors.CalcInvalidRequest(operation, "invalid JSON body", err))
		return
	}
	req.Operation = operation

	resp, err := h.service.Evaluate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Helper methods

// readJSON decodes a JSON body keeping numbers as json.Number, so decimal
// operands reach the service with their original digits. An empty body is
// an empty request.
func (h *Handler) readJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeJSON encodes v before the header goes out, so an unencodable value
// still gets an error body
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{
			Error: "failed to encode response",
			Code:  string(mdwerror.CodeInternal),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	h.writeJSON(w, status, resp)
}

// writeServiceError maps a structured error onto its HTTP status
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	message := err.Error()
	details := ""

	var e *mdwerror.Error
	if errors.As(err, &e) {
		message = e.Message()
		if cause := errors.Unwrap(e); cause != nil {
			details = cause.Error()
		}
	}

	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.LogError(err)
	}
	h.writeError(w, status, code.String(), message, details)
}
