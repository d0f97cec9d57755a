package realtime

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/oralabs/ora/backend/internal/service/pipeline"
)

const (
	readWait     = 60 * time.Second
	pingInterval = 54 * time.Second
)

// Handler runs conversational turns over a websocket, one utterance
// per inbound message.
type Handler struct {
	pipeline *pipeline.Pipeline
	upgrader websocket.Upgrader
}

// New creates the realtime turn handler.
func New(p *pipeline.Pipeline) *Handler {
	return &Handler{
		pipeline: p,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/realtime/{userID}", h.handleSocket)
}

type inboundMessage struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	Personality string `json:"personality"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	UserID    string      `json:"userId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type connectionState struct {
	userID      string
	personality string
}

// socketConn serializes frame writes. The reply path and the ping loop
// write from different goroutines; gorilla/websocket allows only one
// concurrent writer per connection.
type socketConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *socketConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *socketConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[realtime] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[realtime] new connection for user: %s", userID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	socket := &socketConn{conn: conn}
	go h.pingLoop(ctx, socket)

	state := &connectionState{userID: userID}

	h.send(socket, userID, "connected", map[string]any{"user": userID})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[realtime] read error: %v", err)
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(readWait))
			h.handleMessage(ctx, socket, state, msg)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, conn *socketConn, state *connectionState, msg inboundMessage) {
	switch msg.Type {
	case "utterance":
		if msg.Personality != "" {
			state.personality = msg.Personality
		}
		h.handleUtterance(ctx, conn, state, msg.Text)
	case "config":
		state.personality = msg.Personality
		h.send(conn, state.userID, "config", map[string]any{"personality": state.personality})
	default:
		h.sendError(conn, "unsupported message type: "+msg.Type)
	}
}

func (h *Handler) handleUtterance(ctx context.Context, conn *socketConn, state *connectionState, text string) {
	result, err := h.pipeline.ProcessTurn(ctx, pipeline.Input{
		UserID:    state.userID,
		Message:   text,
		ProfileID: state.personality,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyMessage) {
			h.sendError(conn, "text is required")
			return
		}
		h.sendError(conn, err.Error())
		return
	}

	h.send(conn, state.userID, "turn", map[string]any{
		"assistant_response": result.Reply,
		"audio_response":     result.Audio,
		"dominant_emotion":   result.Dominant,
		"emotion_confidence": result.Confidence,
		"emotions":           result.Emotions.ToMap(),
		"risk_level":         result.Assessment.Tier,
		"actions_taken":      result.ActionsTaken,
		"urgency":            result.Urgency,
	})
}

func (h *Handler) send(conn *socketConn, userID, msgType string, data map[string]any) {
	msg := outgoingMessage{
		Type:      msgType,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := conn.writeJSON(msg); err != nil {
		log.Printf("[realtime] write failed: %v", err)
	}
}

func (h *Handler) sendError(conn *socketConn, message string) {
	msg := outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	}
	if err := conn.writeJSON(msg); err != nil {
		log.Printf("[realtime] write error failed: %v", err)
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *socketConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
