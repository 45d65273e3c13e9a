package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/exact/foundation/core/error"
	mdwerrors "github.com/msto63/exact/foundation/core/errors"
	"github.com/msto63/exact/internal/calc/service"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
	"github.com/msto63/exact/pkg/core/logging"
)

// ReadTimeout closes idle WebSocket connections
const ReadTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler evaluates calculations sent over a WebSocket
type WebSocketHandler struct {
	service *service.Service
	logger  *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(svc *service.Service) *WebSocketHandler {
	return &WebSocketHandler{
		service: svc,
		logger:  logging.New("calc-websocket"),
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"` // "calc", "ping"
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"` // "result", "error", "pong"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	requestID := coreGrpc.GetRequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}
	h.handleConnection(coreGrpc.WithRequestID(context.Background(), requestID), conn)
}

// handleConnection serves one connection. Messages are answered in order.
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	logger := h.logger.WithRequestID(coreGrpc.GetRequestID(ctx))
	logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(ReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "error", err)
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(ReadTimeout))

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong", ID: msg.ID})

		case "calc":
			h.handleCalc(ctx, conn, msg)

		default:
			h.sendError(conn, msg.ID, mdwerrors.CalcInvalidRequest("websocket", "unknown message type "+msg.Type, nil))
		}
	}
}

// handleCalc evaluates one calc message
func (h *WebSocketHandler) handleCalc(ctx context.Context, conn *websocket.Conn, msg WSMessage) {
	var req service.Request
	dec := json.NewDecoder(bytes.NewReader(msg.Payload))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		h.sendError(conn, msg.ID, mdwerrors.CalcInvalidRequest("websocket", "invalid calc payload", err))
		return
	}

	resp, err := h.service.Evaluate(ctx, req)
	if err != nil {
		h.sendError(conn, msg.ID, err)
		return
	}
	h.sendResponse(conn, WSResponse{Type: "result", ID: msg.ID, Payload: resp})
}

// sendResponse sends a response message via WebSocket
func (h *WebSocketHandler) sendResponse(conn *websocket.Conn, resp WSResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("Failed to encode WebSocket response", "error", err)
		data, _ = json.Marshal(WSResponse{
			Type:    "error",
			ID:      resp.ID,
			Payload: WSErrorPayload{Code: string(mdwerror.CodeInternal), Message: "failed to encode response"},
		})
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(conn *websocket.Conn, id string, err error) {
	message := err.Error()
	if e, ok := err.(*mdwerror.Error); ok {
		message = e.Message()
	}
	h.sendResponse(conn, WSResponse{
		Type: "error",
		ID:   id,
		Payload: WSErrorPayload{
			Code:    mdwerror.GetCode(err).String(),
			Message: message,
		},
	})
}
