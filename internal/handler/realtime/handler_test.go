package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/oralabs/ora/backend/internal/model/personality"
	"github.com/oralabs/ora/backend/internal/service/dispatch"
	emotionservice "github.com/oralabs/ora/backend/internal/service/emotion"
	"github.com/oralabs/ora/backend/internal/service/generate"
	"github.com/oralabs/ora/backend/internal/service/pipeline"
	riskservice "github.com/oralabs/ora/backend/internal/service/risk"
	"github.com/oralabs/ora/backend/internal/service/session"
	"github.com/oralabs/ora/backend/internal/service/speech"
)

func dialTestServer(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	turns := pipeline.New(
		emotionservice.NewClassifier(nil, emotionservice.NewKeywordProvider(), time.Second),
		riskservice.NewAssessor(),
		generate.NewGenerator(nil, time.Second, nil),
		speech.NewAdapter(nil, 0, time.Second),
		dispatch.NewDispatcher(nil, nil),
		session.NewLRUStore(0, 0),
		personality.NewMemoryStore(personality.Seed(), "empathetic"),
	)

	r := chi.NewRouter()
	New(turns).RegisterRoutes(r)
	srv := httptest.NewServer(r)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime/u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial failed: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) outgoingMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg outgoingMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestSocketGreetsOnConnect(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	msg := readMessage(t, conn)
	if msg.Type != "connected" {
		t.Fatalf("expected connected greeting, got %s", msg.Type)
	}
}

func TestSocketProcessesUtterance(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	readMessage(t, conn) // greeting

	if err := conn.WriteJSON(inboundMessage{Type: "utterance", Text: "I feel anxious today"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != "turn" {
		t.Fatalf("expected turn result, got %s", msg.Type)
	}

	data, ok := msg.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", msg.Data)
	}
	if data["assistant_response"] == "" {
		t.Fatal("expected a reply")
	}
	if data["dominant_emotion"] == "" {
		t.Fatal("expected a dominant emotion")
	}
}

func TestSocketRejectsEmptyUtterance(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	readMessage(t, conn) // greeting

	if err := conn.WriteJSON(inboundMessage{Type: "utterance", Text: "   "}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}
}

func TestSocketConnSerializesConcurrentWrites(t *testing.T) {
	const writers, perWriter = 8, 25

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		socket := &socketConn{conn: conn}
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < perWriter; j++ {
					if err := socket.writeJSON(outgoingMessage{Type: "turn", UserID: "u1"}); err != nil {
						return
					}
					if err := socket.ping(); err != nil {
						return
					}
				}
			}(i)
		}
		wg.Wait()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// The server side closes as soon as its writers finish; replying to
	// its pings would race that close and fail the read loop with a
	// broken pipe, so drop pings instead of writing pongs back.
	conn.SetPingHandler(func(string) error { return nil })

	for i := 0; i < writers*perWriter; i++ {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg outgoingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if msg.Type != "turn" {
			t.Fatalf("corrupted frame at %d: %+v", i, msg)
		}
	}
}

func TestSocketRejectsUnknownType(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	readMessage(t, conn) // greeting

	if err := conn.WriteJSON(inboundMessage{Type: "audio"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}
}
